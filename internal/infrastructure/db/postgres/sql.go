package postgres

// upsertActivitySQL folds one event into the tuple's row in a single atomic
// statement, so concurrent writers for the same tuple cannot lose updates.
// Counters only ever accumulate.
const upsertActivitySQL = `
INSERT INTO user_activity (
  id, user_id, product_id, action, is_loggedin_user,
  views, purchases, cart_adds, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (user_id, product_id, action) DO UPDATE SET
  views      = user_activity.views + EXCLUDED.views,
  purchases  = user_activity.purchases + EXCLUDED.purchases,
  cart_adds  = user_activity.cart_adds + EXCLUDED.cart_adds,
  updated_at = EXCLUDED.updated_at
RETURNING id, user_id, product_id, action, is_loggedin_user,
          views, purchases, cart_adds, created_at, updated_at
`

const listLeadsSQL = `
SELECT a.id, a.user_id, a.product_id, a.action, a.is_loggedin_user,
       a.views, a.purchases, a.cart_adds, a.created_at, a.updated_at,
       u.username, u.email,
       COALESCE(p.name, ''), COALESCE(p.price, 0), COALESCE(p.category, '')
FROM user_activity a
JOIN users u ON u.id = a.user_id
LEFT JOIN products p ON p.id = a.product_id
ORDER BY a.updated_at DESC
`

const listLeadRowsSQL = `
SELECT a.user_id, u.username, u.email, a.views, a.purchases, a.cart_adds
FROM user_activity a
JOIN users u ON u.id = a.user_id
WHERE a.is_loggedin_user
`

// abandonedCartSQL selects cart adds with no recorded purchase of the same
// product by the same user. NOT EXISTS checks the buy row for the tuple, not
// the cart-add row's own purchases counter, which never increments.
const abandonedCartSQL = `
SELECT a.user_id, u.username, u.email,
       a.product_id, COALESCE(p.name, ''), COALESCE(p.image, ''),
       COALESCE(p.price, 0), COALESCE(p.description, '')
FROM user_activity a
JOIN users u ON u.id = a.user_id
LEFT JOIN products p ON p.id = a.product_id
WHERE a.action = 'added_to_cart'
  AND a.cart_adds > 0
  AND NOT EXISTS (
    SELECT 1 FROM user_activity b
    WHERE b.user_id = a.user_id
      AND b.product_id = a.product_id
      AND b.action = 'buy'
      AND b.purchases > 0
  )
`

const frequentViewersSQL = `
SELECT a.user_id, u.username, u.email,
       a.product_id, COALESCE(p.name, ''), COALESCE(p.image, ''),
       COALESCE(p.price, 0), COALESCE(p.description, ''),
       a.views
FROM user_activity a
JOIN users u ON u.id = a.user_id
LEFT JOIN products p ON p.id = a.product_id
WHERE a.action = 'viewed'
  AND a.views > $1
`

const recentPurchasersSQL = `
SELECT a.user_id, u.username, u.email,
       a.product_id, COALESCE(p.name, ''), COALESCE(p.image, ''),
       COALESCE(p.price, 0), COALESCE(p.description, '')
FROM user_activity a
JOIN users u ON u.id = a.user_id
LEFT JOIN products p ON p.id = a.product_id
WHERE a.action = 'buy'
  AND a.purchases > 0
`

const purchaseEntrySQL = `
SELECT u.id, u.username, u.email,
       p.id, COALESCE(p.name, ''), COALESCE(p.image, ''),
       COALESCE(p.price, 0), COALESCE(p.description, '')
FROM users u
JOIN products p ON p.id = $2
WHERE u.id = $1
`
