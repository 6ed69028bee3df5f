package database

import (
	"errors"

	"github.com/nedpals/supabase-go"

	"github.com/noah-isme/bizops-api/pkg/config"
)

// NewSupabase creates a service-role client for the hosted project.
func NewSupabase(cfg config.SupabaseConfig) (*supabase.Client, error) {
	if cfg.URL == "" || cfg.ServiceKey == "" {
		return nil, errors.New("supabase url and service key are required")
	}
	client := supabase.CreateClient(cfg.URL, cfg.ServiceKey)
	if client == nil {
		return nil, errors.New("failed to create supabase client")
	}
	return client, nil
}
