package email

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopsignal/engagement/internal/config"
)

// SESProvider sends through the AWS SES query API with SigV4 signing.
type SESProvider struct {
	region      string
	accessKeyID string
	secretKey   string
	client      *http.Client
	serviceName string
}

func NewSESProvider(cfg config.EmailConfig) (*SESProvider, error) {
	if cfg.AWSRegion == "" {
		return nil, fmt.Errorf("AWS_REGION is required")
	}
	if cfg.AWSAccessKeyID == "" || cfg.AWSSecretKey == "" {
		return nil, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required")
	}
	return &SESProvider{
		region:      cfg.AWSRegion,
		accessKeyID: cfg.AWSAccessKeyID,
		secretKey:   cfg.AWSSecretKey,
		client:      &http.Client{Timeout: 30 * time.Second},
		serviceName: "ses",
	}, nil
}

func (p *SESProvider) Send(ctx context.Context, msg *Message) error {
	endpoint := fmt.Sprintf("https://email.%s.amazonaws.com", p.region)

	formData := url.Values{}
	formData.Set("Action", "SendEmail")
	formData.Set("Source", fmt.Sprintf("%s <%s>", msg.FromName, msg.From))
	formData.Set("Destination.ToAddresses.member.1", msg.To)
	formData.Set("Message.Subject.Data", msg.Subject)
	formData.Set("Message.Subject.Charset", "UTF-8")
	if msg.Text != "" {
		formData.Set("Message.Body.Text.Data", msg.Text)
		formData.Set("Message.Body.Text.Charset", "UTF-8")
	}
	formData.Set("Message.Body.Html.Data", msg.HTML)
	formData.Set("Message.Body.Html.Charset", "UTF-8")

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(formData.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SES request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := p.signRequest(req, formData.Encode()); err != nil {
		return fmt.Errorf("failed to sign SES request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to SES: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SES API error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

// signRequest applies AWS Signature Version 4.
func (p *SESProvider) signRequest(req *http.Request, payload string) error {
	now := time.Now().UTC()
	dateStamp := now.Format("20060102")
	amzDate := now.Format("20060102T150405Z")

	canonicalHeaders := fmt.Sprintf("host:%s\nx-amz-date:%s\n", req.URL.Host, amzDate)
	signedHeaders := "host;x-amz-date"

	payloadHash := fmt.Sprintf("%x", sha256.Sum256([]byte(payload)))

	canonicalRequest := strings.Join([]string{
		req.Method, "/", "", canonicalHeaders, signedHeaders, payloadHash,
	}, "\n")

	algorithm := "AWS4-HMAC-SHA256"
	credentialScope := fmt.Sprintf("%s/%s/%s/aws4_request", dateStamp, p.region, p.serviceName)

	stringToSign := strings.Join([]string{
		algorithm,
		amzDate,
		credentialScope,
		fmt.Sprintf("%x", sha256.Sum256([]byte(canonicalRequest))),
	}, "\n")

	kDate := hmacSHA256([]byte("AWS4"+p.secretKey), dateStamp)
	kRegion := hmacSHA256(kDate, p.region)
	kService := hmacSHA256(kRegion, p.serviceName)
	kSigning := hmacSHA256(kService, "aws4_request")
	signature := fmt.Sprintf("%x", hmacSHA256(kSigning, stringToSign))

	authorization := fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		algorithm, p.accessKeyID, credentialScope, signedHeaders, signature)

	req.Header.Set("X-Amz-Date", amzDate)
	req.Header.Set("Authorization", authorization)
	return nil
}

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}

func (p *SESProvider) Name() string { return "ses" }
