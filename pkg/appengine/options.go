package appengine

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
)

var queryEncoder = schema.NewEncoder()

// CallOptions carries the optional modifiers of a single call. A nil field is
// absent and never produces a query parameter; endpoints ignore modifiers they
// do not accept.
type CallOptions struct {
	// Fields selects a subset of response fields.
	Fields *string `schema:"fields,omitempty"`
	// QuotaUser attributes quota to an arbitrary user string.
	QuotaUser *string `schema:"quotaUser,omitempty"`
	// Key overrides the client-wide API key for this call.
	Key *string `schema:"key,omitempty"`

	PageToken *string `schema:"pageToken,omitempty"`
	PageSize  *int64  `schema:"pageSize,omitempty"`
	Filter    *string `schema:"filter,omitempty"`

	// UpdateMask lists the fields a patch call modifies.
	UpdateMask *string `schema:"updateMask,omitempty"`
	// View selects BASIC or FULL version detail.
	View *VersionView `schema:"view,omitempty"`
	// MigrateTraffic requests gradual traffic migration on services.patch.
	MigrateTraffic *bool `schema:"migrateTraffic,omitempty"`
}

// NewCallOptions creates an empty set of call options.
func NewCallOptions() *CallOptions {
	return &CallOptions{}
}

// WithFields sets the response field selector.
func (o *CallOptions) WithFields(fields string) *CallOptions {
	o.Fields = &fields

	return o
}

// WithQuotaUser sets the quota-tracking user.
func (o *CallOptions) WithQuotaUser(quotaUser string) *CallOptions {
	o.QuotaUser = &quotaUser

	return o
}

// WithKey sets a per-call API key.
func (o *CallOptions) WithKey(key string) *CallOptions {
	o.Key = &key

	return o
}

// WithPageToken sets the continuation token of a list call.
func (o *CallOptions) WithPageToken(token string) *CallOptions {
	o.PageToken = &token

	return o
}

// WithPageSize sets the maximum page size of a list call.
func (o *CallOptions) WithPageSize(size int64) *CallOptions {
	o.PageSize = &size

	return o
}

// WithFilter sets the filter expression of a list call.
func (o *CallOptions) WithFilter(filter string) *CallOptions {
	o.Filter = &filter

	return o
}

// WithUpdateMask sets the field mask of a patch call.
func (o *CallOptions) WithUpdateMask(mask string) *CallOptions {
	o.UpdateMask = &mask

	return o
}

// WithView sets the version view.
func (o *CallOptions) WithView(view VersionView) *CallOptions {
	o.View = &view

	return o
}

// WithMigrateTraffic sets the traffic migration flag.
func (o *CallOptions) WithMigrateTraffic(migrate bool) *CallOptions {
	o.MigrateTraffic = &migrate

	return o
}

// ToValues converts the options to URL query values using their wire names.
func (o *CallOptions) ToValues() (url.Values, error) {
	values := url.Values{}
	if o == nil {
		return values, nil
	}

	err := queryEncoder.Encode(o, values)
	if err != nil {
		return nil, fmt.Errorf("encoding call options: %w", err)
	}

	return values, nil
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int64 returns a pointer to i.
func Int64(i int64) *int64 { return &i }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
