package entity

import "time"

type ConnectorField struct {
	Key    string
	Label  string
	Secret bool
}

// StoredCredential never holds the clear value.
type StoredCredential struct {
	Fingerprint []byte
	Masked      string
}

type Connector struct {
	Id          string
	Name        string
	Category    string
	Description string
	Fields      []ConnectorField
	OAuth       bool
	Connected   bool
	ConnectedAt *time.Time
	Credentials map[string]StoredCredential
}
