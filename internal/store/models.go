package store

// User is the profile record mirrored from the identity provider. Email is
// the partition key and the canonical join key with the user pool; the
// identity provider stays authoritative for credential and verification
// state, this record for the display name.
type User struct {
	ID            string `dynamodbav:"id" json:"id"`
	Email         string `dynamodbav:"email" json:"email"`
	Name          string `dynamodbav:"name" json:"name"`
	CognitoSub    string `dynamodbav:"cognito_sub" json:"-"`
	EmailVerified bool   `dynamodbav:"email_verified" json:"emailVerified"`
	CreatedAt     string `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt     string `dynamodbav:"updated_at" json:"updatedAt"`
}

// Subscription is keyed by (id, user_id) so every lookup carries the owner
// and can never cross accounts.
type Subscription struct {
	ID              string  `dynamodbav:"id" json:"id"`
	UserID          string  `dynamodbav:"user_id" json:"user_id"`
	Name            string  `dynamodbav:"name" json:"name"`
	Amount          float64 `dynamodbav:"amount" json:"amount"`
	BillingCycle    string  `dynamodbav:"billing_cycle" json:"billing_cycle"`
	NextBillingDate string  `dynamodbav:"next_billing_date" json:"next_billing_date"`
	Category        *string `dynamodbav:"category" json:"category"`
	Description     *string `dynamodbav:"description" json:"description"`
	IsActive        bool    `dynamodbav:"is_active" json:"is_active"`
	CreatedAt       string  `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at" json:"updated_at"`
}

// PriceChange is an append-only log entry; the ttl attribute lets DynamoDB
// prune entries after the retention window.
type PriceChange struct {
	ID             string  `dynamodbav:"id" json:"id"`
	SubscriptionID string  `dynamodbav:"subscription_id" json:"subscription_id"`
	OldPrice       float64 `dynamodbav:"old_price" json:"old_price"`
	NewPrice       float64 `dynamodbav:"new_price" json:"new_price"`
	DetectedAt     string  `dynamodbav:"detected_at" json:"detected_at"`
	TTL            int64   `dynamodbav:"ttl" json:"-"`
}
