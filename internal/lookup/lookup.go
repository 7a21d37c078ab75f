// Package lookup resolves synthesis-time context from a live AWS account.
//
// Lookups are cached in a context file so repeated synthesis runs are
// deterministic and work offline once the file is populated.
package lookup

import (
	"context"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

var (
	// ErrVPCNotFound is returned when no VPC carries the requested name.
	ErrVPCNotFound = errors.New("vpc not found")

	// ErrAmbiguousVPC is returned when more than one VPC carries the requested name.
	ErrAmbiguousVPC = errors.New("more than one vpc matches")
)

// VPC is the part of a looked-up VPC the stacks consume.
type VPC struct {
	ID                string   `json:"vpcId"`
	CIDR              string   `json:"vpcCidrBlock"`
	AvailabilityZones []string `json:"availabilityZones"`
	PublicSubnetIDs   []string `json:"publicSubnetIds"`
	PrivateSubnetIDs  []string `json:"privateSubnetIds"`
}

// Query identifies a VPC lookup.
type Query struct {
	Account string
	Region  string
	Name    string
}

// Key returns the context key the lookup result is cached under.
func (q Query) Key() string {
	return fmt.Sprintf("vpc-provider:account=%s:filter.tag:Name=%s:region=%s", q.Account, q.Name, q.Region)
}

var keyPattern = regexp.MustCompile(`^vpc-provider:account=([^:]*):filter\.tag:Name=(.*):region=([^:]*)$`)

// parseKey is the inverse of Query.Key.
func parseKey(key string) (Query, bool) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return Query{}, false
	}
	return Query{Account: m[1], Name: m[2], Region: m[3]}, true
}

// matches reports whether cached answers q. Empty account or region in q
// match any value.
func (q Query) matches(cached Query) bool {
	return q.Name == cached.Name &&
		(q.Account == "" || q.Account == cached.Account) &&
		(q.Region == "" || q.Region == cached.Region)
}

// Provider looks up a VPC.
type Provider interface {
	LookupVPC(ctx context.Context, q Query) (VPC, error)
}
