// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"github.com/hashicorp/go-multierror"

	"github.com/ice-blockchain/screens/terror"
)

// merge resolves the configuration of a single event: stored < override < attrs.
// The attributes that didn't map to any configuration field are returned as extras.
func merge(stored *Configuration, override, attrs Attributes) (merged *Configuration, extras Attributes) {
	merged = new(Configuration)
	*merged = *stored
	extras = make(Attributes, len(override)+len(attrs))
	for _, layer := range []Attributes{override, attrs} {
		for key, val := range layer {
			if merged.apply(key, val) {
				delete(extras, key)
			} else {
				extras[key] = val
			}
		}
	}

	return merged, extras
}

// apply sets the field named by key, if there's one and val has its type.
func (c *Configuration) apply(key string, val any) bool {
	if key == BypassIPUniquenessAttribute {
		flag, ok := val.(bool)
		if ok {
			c.BypassIPUniqueness = flag
		}

		return ok
	}
	str, ok := val.(string)
	if !ok {
		return false
	}
	switch key {
	case TenantIDAttribute:
		c.TenantID = str
	case PlatformAttribute:
		c.Platform = str
	case UniqueIdentifierAttribute:
		c.UniqueIdentifier = str
	case OSDetailAttribute:
		c.OSDetail = str
	case AppDetailAttribute:
		c.AppDetail = str
	case UserLanguageAttribute:
		c.UserLanguage = str
	case PathAttribute:
		c.Path = str
	case EndpointAttribute:
		c.Endpoint = str
	default:
		return false
	}

	return true
}

// validate reports every missing required attribute at once.
func (c *Configuration) validate() error {
	var mErr *multierror.Error
	if c.TenantID == "" {
		mErr = multierror.Append(mErr, missing(ErrMissingTenantID, TenantIDAttribute))
	}
	if c.Platform == "" {
		mErr = multierror.Append(mErr, missing(ErrMissingPlatform, PlatformAttribute))
	}
	if c.BypassIPUniqueness && c.UniqueIdentifier == "" {
		mErr = multierror.Append(mErr, missing(ErrMissingUniqueIdentifier, UniqueIdentifierAttribute))
	}

	return mErr.ErrorOrNil()
}

func missing(err error, attribute string) error {
	return terror.New(err, map[string]any{"attribute": attribute})
}

// buildPayload maps the event onto the collector's fields. Extras go first so they can never shadow a mapped field.
func buildPayload(eventType string, cfg *Configuration, extras, computed Attributes) map[string]any {
	body := make(map[string]any, len(extras)+len(computed)+mappedFieldsCount)
	for key, val := range extras {
		body[key] = val
	}
	for key, val := range computed {
		body[key] = val
	}
	body[typeField] = eventType
	body[pathField] = orNotSet(cfg.Path)
	body[collectedViaField] = cfg.Platform
	body[osDetailField] = orNotSet(cfg.OSDetail)
	body[appDetailField] = orNotSet(cfg.AppDetail)
	body[userLanguageField] = orNotSet(cfg.UserLanguage)
	body[uniqueIdentifierField] = cfg.UniqueIdentifier
	body[bypassIPField] = cfg.BypassIPUniqueness
	body[tenantIDField] = cfg.TenantID

	return body
}

func orNotSet(val string) string {
	if val == "" {
		return NotSet
	}

	return val
}
