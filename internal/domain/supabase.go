package domain

import "github.com/supabase-community/supabase-go"

// SupabaseUser represents a user from Supabase Auth
type SupabaseUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	CreatedAt    string                 `json:"created_at"`
	UpdatedAt    string                 `json:"updated_at"`
}

// SupabaseClient wraps the Supabase connections used by the service: an
// anon-key client scoped by the caller's token (RLS applies) and a
// service-role client that bypasses RLS for storage uploads on behalf of
// anonymous users.
type SupabaseClient interface {
	Initialize() error
	ValidateToken(token string) (*SupabaseUser, error)

	// GetClientWithToken returns a client carrying the caller's bearer token.
	// An empty token yields the plain anon-key client.
	GetClientWithToken(token string) (*supabase.Client, error)
	// Service returns the service-role client.
	Service() (*supabase.Client, error)
}
