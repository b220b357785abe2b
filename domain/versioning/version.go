package versioning

import (
	"strings"

	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/DanBrus/IB-frontend/pkg/utils"
)

// Version is a named board version as listed by the graph service
type Version struct {
	ID          string
	Name        string
	Description string
}

// NewVersion is the create-version dialog input
type NewVersion struct {
	Version     string `json:"version" validate:"required,nowhitespace"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Normalize trims every field
func (n NewVersion) Normalize() NewVersion {
	return NewVersion{
		Version:     strings.TrimSpace(n.Version),
		Name:        strings.TrimSpace(n.Name),
		Description: strings.TrimSpace(n.Description),
	}
}

// Validate trims the input and checks it. The returned value is the
// trimmed form to send.
func (n NewVersion) Validate() (NewVersion, error) {
	trimmed := n.Normalize()
	if err := utils.ValidateStruct(trimmed); err != nil {
		return trimmed, errors.NewValidationError(err.Error())
	}
	return trimmed, nil
}

// ToVersion converts the dialog input into a listed version
func (n NewVersion) ToVersion() Version {
	return Version{ID: n.Version, Name: n.Name, Description: n.Description}
}

// Contains reports whether id is listed
func Contains(versions []Version, id string) bool {
	for _, v := range versions {
		if v.ID == id {
			return true
		}
	}
	return false
}

// PickVersion returns the first preferred id that is listed, else the first
// listed version, else "" for an empty board.
func PickVersion(versions []Version, preferred ...string) string {
	for _, id := range preferred {
		if id != "" && Contains(versions, id) {
			return id
		}
	}
	if len(versions) > 0 {
		return versions[0].ID
	}
	return ""
}
