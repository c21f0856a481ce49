// Package config handles loading and validating Voxgate configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (token key, broker passwords) should be set via environment variables
//   - The config file should have restricted permissions (0600)
//   - The token decryption key must never be committed alongside the ciphertext
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.SmartThings.BaseURL)
package config
