package dto

import "github.com/shopsignal/engagement/internal/domain"

func ToActivityResp(r *domain.ActivityRecord) *ActivityResp {
	if r == nil {
		return nil
	}
	return &ActivityResp{
		ID:             r.ID,
		UserID:         r.UserID,
		ProductID:      r.ProductID,
		Action:         string(r.Action),
		IsLoggedInUser: r.IsLoggedInUser,
		Views:          r.Views,
		Purchases:      r.Purchases,
		CartAdds:       r.CartAdds,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func ToLeadResp(l domain.LeadRecord) LeadResp {
	return LeadResp{
		ActivityResp:    *ToActivityResp(&l.ActivityRecord),
		Username:        l.Username,
		Email:           l.Email,
		ProductName:     l.ProductName,
		ProductPrice:    l.ProductPrice,
		ProductCategory: l.ProductCategory,
	}
}
