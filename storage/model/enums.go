package model

import (
	"sort"
	"sync"
)

// Enumeration field names. They double as the parameter of the `enum`
// validation tag, e.g. `validate:"enum=marketplace"`.
const (
	EnumMarketplace = "marketplace"
	EnumCaseSource  = "case_source"
	EnumCaseStatus  = "case_status"
	EnumWorkstream  = "workstream"
	EnumComplexity  = "complexity"
	EnumPriority    = "priority"
	EnumSellerType  = "seller_type"
	EnumSubStatus   = "sub_status"
)

// Canonical case status values
const (
	CaseStatusSubmitted           = "SUBMITTED"
	CaseStatusAwaitingInformation = "AWAITING INFORMATION"
	CaseStatusCancelled           = "CANCELLED"
	CaseStatusOnHold              = "ON-HOLD"
	CaseStatusWIP                 = "WIP"
	CaseStatusCompleted           = "COMPLETED"
)

var (
	Marketplaces = []string{"EU5", "EU", "3PX", "MENA", "AU", "SG", "NA", "JP", "ZA"}
	CaseSources  = []string{"ASTRO", "WINSTON"}
	CaseStatuses = []string{
		CaseStatusSubmitted,
		CaseStatusAwaitingInformation,
		CaseStatusCancelled,
		CaseStatusOnHold,
		CaseStatusWIP,
		CaseStatusCompleted,
	}
	Workstreams = []string{
		"PAID",
		"STRATEGIC_PRODUCT_SMART_CONNECT_EU",
		"DSR",
		"STRATEGIC_PRODUCT_SMART_CONNECT_MENA",
		"STRATEGIC_DEVELOPER_LUXURY_NA",
		"MIGRATION_M@UMP",
		"STRATEGIC_DSR",
		"STRATEGIC_DEVELOPER_LUXURY_EU",
		"F3",
		"LUXURY STORE",
		"STRATEGIC_PRODUCT_SMART_CONNECT_AU",
		"B2B",
		"STRATEGIC_PRODUCT_MFG",
		"BRAND_AGENCY",
		"DSR_3PD",
		"STRATEGIC_PRODUCT_SMART_CONNECT_AES_AU",
	}
	Complexities = []string{"Easy", "Medium", "Hard"}
	Priorities   = []string{"Low", "Medium", "High"}
	SellerTypes  = []string{"NEW", "EXISTING"}
	// SubStatuses lists the known sub-status tokens. The list is open:
	// unknown tokens are stored as they are.
	SubStatuses = []string{
		"INT_START",
		"INT_WIP",
		"ON_HOLD",
		"PMA_DRAF",
		"MAC",
		"PAA_DRAF",
		"AAC",
		"PMA",
		"PAA",
		"ASSIGNED",
		"KO_SENT",
		"PMA_FUP_1",
		"PMA_FUP_2",
		"PMA_FUP_3",
		"PAC",
		"CANCELLED",
		"Case_Created",
		"PMCA",
		"Note",
		"PMA_FUP_4",
		"SUPPORT",
		"HANDOVER",
	}
)

// enumRegistry holds the closed value sets that are checked on write.
// Fields without an entry are not restricted.
type enumRegistry struct {
	mu     sync.RWMutex
	values map[string]map[string]struct{}
	order  map[string][]string
}

var enums = newEnumRegistry()

func newEnumRegistry() *enumRegistry {
	r := &enumRegistry{
		values: make(map[string]map[string]struct{}),
		order:  make(map[string][]string),
	}
	r.register(EnumMarketplace, Marketplaces)
	r.register(EnumCaseSource, CaseSources)
	r.register(EnumCaseStatus, CaseStatuses)
	r.register(EnumWorkstream, Workstreams)
	r.register(EnumComplexity, Complexities)
	r.register(EnumPriority, Priorities)
	r.register(EnumSellerType, SellerTypes)
	return r
}

func (r *enumRegistry) register(field string, values []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	r.values[field] = set
	r.order[field] = append([]string(nil), values...)
}

// RegisterEnum sets (or replaces) the allowed values for a field. Passing a
// nil slice removes the restriction.
func RegisterEnum(field string, values []string) {
	if values == nil {
		enums.mu.Lock()
		delete(enums.values, field)
		delete(enums.order, field)
		enums.mu.Unlock()
		return
	}
	enums.register(field, values)
}

// IsValidEnumValue reports whether v is allowed for the field. Fields without
// a registered enumeration accept every value.
func IsValidEnumValue(field, v string) bool {
	enums.mu.RLock()
	defer enums.mu.RUnlock()
	set, ok := enums.values[field]
	if !ok {
		return true
	}
	_, ok = set[v]
	return ok
}

// Enumerations returns the registered enumerations plus the known
// sub-status tokens, keyed by field name.
func Enumerations() map[string][]string {
	enums.mu.RLock()
	defer enums.mu.RUnlock()
	out := make(map[string][]string, len(enums.order)+1)
	for field, values := range enums.order {
		out[field] = append([]string(nil), values...)
	}
	out[EnumSubStatus] = append([]string(nil), SubStatuses...)
	return out
}

// EnumFields returns the names of the restricted fields, sorted.
func EnumFields() []string {
	enums.mu.RLock()
	defer enums.mu.RUnlock()
	fields := make([]string, 0, len(enums.order))
	for f := range enums.order {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// IsCanonicalCaseStatus reports whether status is one of the six summary buckets.
func IsCanonicalCaseStatus(status string) bool {
	for _, s := range CaseStatuses {
		if s == status {
			return true
		}
	}
	return false
}
