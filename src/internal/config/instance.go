package config

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// InstanceID validates an explicitly configured server instance id, or
// mints a fresh one if none was given — mirrors the teacher's UPnP UDN
// handling (internal/config/cfg.go's upnp.validate: "if a UUID/UDN is set it
// must be a valid UUID ... if empty, a new one is generated").
func InstanceID(configured string) (uuid.UUID, error) {
	if configured == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(configured)
	if err != nil {
		return uuid.UUID{}, errors.Wrapf(err, "instance id %q is not a valid UUID", configured)
	}
	return id, nil
}
