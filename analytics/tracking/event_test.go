// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ice-blockchain/screens/terror"
)

func TestMergePrecedence(t *testing.T) {
	t.Parallel()
	stored := &Configuration{TenantID: "T1", Platform: "web", OSDetail: "linux", Path: "/stored"}
	override := Attributes{PlatformAttribute: "ios", AppDetailAttribute: "2.0.0", PathAttribute: "/override", "campaign": "spring", UserLanguageAttribute: 7}
	attrs := Attributes{
		PathAttribute:               "/explicit",
		UserLanguageAttribute:       "de-DE",
		BypassIPUniquenessAttribute: true,
		UniqueIdentifierAttribute:   "u1",
		"plan":                      "pro",
		TenantIDAttribute:           42,
	}

	merged, extras := merge(stored, override, attrs)
	assert.Equal(t, &Configuration{
		TenantID:           "T1",
		Platform:           "ios",
		UniqueIdentifier:   "u1",
		OSDetail:           "linux",
		AppDetail:          "2.0.0",
		UserLanguage:       "de-DE",
		Path:               "/explicit",
		BypassIPUniqueness: true,
	}, merged)
	assert.Equal(t, Attributes{"plan": "pro", "campaign": "spring", TenantIDAttribute: 42}, extras)
	assert.Equal(t, &Configuration{TenantID: "T1", Platform: "web", OSDetail: "linux", Path: "/stored"}, stored)
	assert.Len(t, override, 5)
}

func TestMergeZeroValuesOverwrite(t *testing.T) {
	t.Parallel()
	stored := &Configuration{TenantID: "T1", Platform: "web", OSDetail: "linux", Path: "/stored", BypassIPUniqueness: true, UniqueIdentifier: "u1"}

	merged, extras := merge(stored, Attributes{OSDetailAttribute: "", BypassIPUniquenessAttribute: false}, nil)
	assert.Equal(t, &Configuration{TenantID: "T1", Platform: "web", Path: "/stored", UniqueIdentifier: "u1"}, merged)
	assert.Empty(t, extras)

	merged, extras = merge(stored, nil, Attributes{PathAttribute: ""})
	assert.Empty(t, merged.Path)
	assert.Empty(t, extras)

	merged, _ = merge(stored, Attributes{BypassIPUniquenessAttribute: false}, Attributes{BypassIPUniquenessAttribute: true})
	assert.True(t, merged.BypassIPUniqueness)
	assert.True(t, stored.BypassIPUniqueness)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, (&Configuration{TenantID: "T1", Platform: "web"}).validate())
	require.NoError(t, (&Configuration{TenantID: "T1", Platform: "web", BypassIPUniqueness: true, UniqueIdentifier: "u1"}).validate())

	err := (&Configuration{Platform: "web"}).validate()
	require.ErrorIs(t, err, ErrMissingTenantID)
	require.NotErrorIs(t, err, ErrMissingPlatform)

	err = (&Configuration{TenantID: "T1"}).validate()
	require.ErrorIs(t, err, ErrMissingPlatform)

	err = (&Configuration{TenantID: "T1", Platform: "web", BypassIPUniqueness: true}).validate()
	require.ErrorIs(t, err, ErrMissingUniqueIdentifier)

	err = (&Configuration{BypassIPUniqueness: true}).validate()
	require.ErrorIs(t, err, ErrMissingTenantID)
	require.ErrorIs(t, err, ErrMissingPlatform)
	require.ErrorIs(t, err, ErrMissingUniqueIdentifier)
	missingAttributes := make([]any, 0, 3)
	for _, tErr := range terror.All(err) {
		missingAttributes = append(missingAttributes, tErr.Value("attribute"))
	}
	assert.Equal(t, []any{TenantIDAttribute, PlatformAttribute, UniqueIdentifierAttribute}, missingAttributes)
}

func TestBuildPayloadDefaults(t *testing.T) {
	t.Parallel()
	body := buildPayload(ScreenViewEvent, &Configuration{TenantID: "T1", Platform: "web"}, nil, nil)
	assert.Equal(t, map[string]any{
		"type":                   "screen_view",
		"path":                   NotSet,
		"metr_collected_via":     "web",
		"metr_os_detail":         NotSet,
		"metr_app_detail":        NotSet,
		"metr_user_language":     NotSet,
		"metr_unique_identifier": "",
		"metr_bypass_ip":         false,
		"tid":                    "T1",
	}, body)
}

func TestBuildPayloadExtrasNeverShadowMappedFields(t *testing.T) {
	t.Parallel()
	cfg := &Configuration{
		TenantID:           "T1",
		Platform:           "ios",
		UniqueIdentifier:   "u1",
		OSDetail:           "iOS 17",
		AppDetail:          "1.0.0",
		UserLanguage:       "en-US",
		Path:               "/checkout",
		BypassIPUniqueness: true,
	}
	extras := Attributes{"metr_collected_via": "spoofed", "type": "spoofed", "cart_items": 3}
	computed := Attributes{LeaveFromPathField: "/cart", LeaveFromDurationField: int64(1200)}
	body := buildPayload("purchase", cfg, extras, computed)
	assert.Equal(t, map[string]any{
		"type":                   "purchase",
		"path":                   "/checkout",
		"metr_collected_via":     "ios",
		"metr_os_detail":         "iOS 17",
		"metr_app_detail":        "1.0.0",
		"metr_user_language":     "en-US",
		"metr_unique_identifier": "u1",
		"metr_bypass_ip":         true,
		"tid":                    "T1",
		"cart_items":             3,
		LeaveFromPathField:       "/cart",
		LeaveFromDurationField:   int64(1200),
	}, body)
	assert.Len(t, extras, 3)
}
