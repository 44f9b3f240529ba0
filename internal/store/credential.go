package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// The credential lives in its own file, next to config.json, so clearing it
// on logout never races a config write. The session store is its only
// writer; everything else reads the token through the session.

type credentialFile struct {
	Token string `json:"token"`
}

func credentialPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credential.json"), nil
}

// LoadCredential reads the persisted bearer token. A missing file means "not
// logged in" and is not an error.
func LoadCredential() (string, error) {
	path, err := credentialPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	var cf credentialFile
	if err := json.Unmarshal(b, &cf); err != nil {
		return "", err
	}
	return strings.TrimSpace(cf.Token), nil
}

func SaveCredential(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ClearCredential()
	}
	path, err := credentialPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(credentialFile{Token: token})
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "credential.json.*.tmp", path, b, 0o600)
}

func ClearCredential() error {
	path, err := credentialPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
