package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

const jwtSecretKey = "secret"

// Vault holds the server's auth secret material. Only the JWT signing secret
// lives here; token state and registry state carry no secrets.
type Vault struct {
	SecretPath string
	*api.Client
}

func New(token, unsealKey, address, secretPath string) (*Vault, error) {
	config := &api.Config{
		Address: address,
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("new: error initializing vault: %w", err)
	}

	client.SetToken(token)

	s := client.Sys()
	status, err := s.SealStatus()
	if err != nil {
		return nil, fmt.Errorf("new: error getting seal status: %w", err)
	}

	if status.Sealed {
		unsealResponse, err := s.Unseal(unsealKey)
		if err != nil {
			return nil, fmt.Errorf("new: error getting unseal response: %w", err)
		}
		if unsealResponse.Sealed {
			return nil, fmt.Errorf("new: vault unseal unsuccesfull")
		}
	}

	err = createIfNotExists(client, secretPath)
	if err != nil {
		return nil, fmt.Errorf("new: unable to mount secret path: %w", err)
	}

	return &Vault{SecretPath: secretPath, Client: client}, nil
}

// JWTSecret reads the signing secret from the mounted path. ok is false when
// the path holds no secret yet; callers fall back to the configured one.
func (v *Vault) JWTSecret() (string, bool, error) {
	secret, err := v.Logical().Read(fmt.Sprintf("%s/jwt", v.SecretPath))
	if err != nil {
		return "", false, fmt.Errorf("jwtSecret: unable to read from vault: %w", err)
	}
	if secret == nil {
		return "", false, nil
	}

	value, ok := secret.Data[jwtSecretKey].(string)
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func createIfNotExists(client *api.Client, path string) error {
	mounts, err := client.Sys().ListMounts()
	if err != nil {
		return fmt.Errorf("createIfNotExists: unable to list mounts: %w", err)
	}

	if _, ok := mounts[path+"/"]; !ok {
		err = client.Sys().Mount(path, &api.MountInput{Type: "kv"})
		if err != nil {
			return fmt.Errorf("createIfNotExists: unable to create path: %w", err)
		}
	}

	return nil
}
