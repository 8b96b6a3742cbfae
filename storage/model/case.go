package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Case is a tracked support engagement with a seller.
//
// CaseID is chosen by the caller and never changes after creation.
// LastSubStatus is derived from the case's updates and is maintained by the
// update storage; values passed in on create or update are ignored.
type Case struct {
	CaseID    string    `gorm:"primaryKey;size:191" json:"case_id" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SellerID       int64  `json:"seller_id" validate:"min=0"`
	SellerName     string `gorm:"size:255" json:"seller_name"`
	SpecialistID   string `gorm:"size:255" json:"specialist_id"`
	SpecialistName string `gorm:"size:255" json:"specialist_name"`

	Marketplace string `gorm:"size:64;index" json:"marketplace" validate:"enum=marketplace"`
	CaseSource  string `gorm:"size:64" json:"case_source" validate:"enum=case_source"`
	CaseStatus  string `gorm:"size:64;index" json:"case_status" validate:"enum=case_status"`
	Workstream  string `gorm:"size:64" json:"workstream" validate:"enum=workstream"`

	// ListingStartDate and ListingCompletionDate are ISO calendar dates (YYYY-MM-DD).
	ListingStartDate      *string `gorm:"size:10" json:"listing_start_date" validate:"omitempty,datetime=2006-01-02"`
	ListingCompletionDate *string `gorm:"size:10" json:"listing_completion_date" validate:"omitempty,datetime=2006-01-02"`

	IssueType    datatypes.JSONSlice[string] `json:"issue_type"`
	Complexity   string                      `gorm:"size:32" json:"complexity" validate:"enum=complexity"`
	Priority     string                      `gorm:"size:32" json:"priority" validate:"enum=priority"`
	APISupported datatypes.JSONSlice[string] `gorm:"column:api_supported" json:"api_supported"`

	IntegrationType  string              `gorm:"size:255" json:"integration_type"`
	SellerType       string              `gorm:"size:32" json:"seller_type" validate:"enum=seller_type"`
	FeedbackReceived bool                `json:"feedback_received"`
	CSATScore        decimal.NullDecimal `gorm:"type:decimal(3,1)" json:"csat_score"`
	Notes            string              `gorm:"type:text" json:"notes"`

	LastSubStatus *string `gorm:"size:64" json:"last_sub_status"`

	// Updates is only used to declare the foreign key of the updates table;
	// it is never loaded.
	Updates []Update `gorm:"foreignKey:CaseID;references:CaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

// CSAT score bounds
var (
	CSATMin = decimal.Zero
	CSATMax = decimal.NewFromInt(5)
)

// CSATInRange reports whether d lies in [CSATMin, CSATMax].
func CSATInRange(d decimal.Decimal) bool {
	return !d.LessThan(CSATMin) && !d.GreaterThan(CSATMax)
}

// IssueTypeDisplay returns the issue types joined the way they are shown and
// exported.
func (c Case) IssueTypeDisplay() string {
	return strings.Join(c.IssueType, ", ")
}

// APISupportedDisplay returns the supported APIs joined the way they are shown
// and exported.
func (c Case) APISupportedDisplay() string {
	return strings.Join(c.APISupported, ", ")
}

// CaseFilters maps a filterable field name to a substring that field must
// contain (case-insensitive).
type CaseFilters map[string]string

// Filterable case fields
const (
	FilterCaseID         = "case_id"
	FilterCaseStatus     = "case_status"
	FilterLastSubStatus  = "last_sub_status"
	FilterSellerName     = "seller_name"
	FilterSpecialistName = "specialist_name"
	FilterMarketplace    = "marketplace"
	FilterWorkstream     = "workstream"
	FilterPriority       = "priority"
	FilterIssueType      = "issue_type"
)

// FilterableCaseFields is the allow-list of fields CaseFilters may reference.
var FilterableCaseFields = []string{
	FilterCaseID,
	FilterCaseStatus,
	FilterLastSubStatus,
	FilterSellerName,
	FilterSpecialistName,
	FilterMarketplace,
	FilterWorkstream,
	FilterPriority,
	FilterIssueType,
}

// IsFilterableCaseField reports whether field may be used in CaseFilters.
func IsFilterableCaseField(field string) bool {
	for _, f := range FilterableCaseFields {
		if f == field {
			return true
		}
	}
	return false
}

// FilterValue returns the text of c that a filter on field is matched
// against. List fields are matched on their joined display form.
func (c Case) FilterValue(field string) string {
	switch field {
	case FilterCaseID:
		return c.CaseID
	case FilterCaseStatus:
		return c.CaseStatus
	case FilterLastSubStatus:
		if c.LastSubStatus == nil {
			return ""
		}
		return *c.LastSubStatus
	case FilterSellerName:
		return c.SellerName
	case FilterSpecialistName:
		return c.SpecialistName
	case FilterMarketplace:
		return c.Marketplace
	case FilterWorkstream:
		return c.Workstream
	case FilterPriority:
		return c.Priority
	case FilterIssueType:
		return c.IssueTypeDisplay()
	default:
		return ""
	}
}

// Matches reports whether every active filter is a substring of the
// corresponding field, ignoring case.
func (f CaseFilters) Matches(c Case) bool {
	for field, value := range f.Active() {
		if !containsFold(c.FilterValue(field), value) {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Active returns the filters that apply: known fields with a non-blank value.
// Values are trimmed.
func (f CaseFilters) Active() CaseFilters {
	active := CaseFilters{}
	for field, value := range f {
		if !IsFilterableCaseField(field) {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		active[field] = value
	}
	return active
}

// CaseStore abstracts persistent access to cases.
type CaseStore interface {
	// Create inserts a new case; AlreadyExistsError if the case id is taken
	Create(c Case) error
	// Get returns the case or nil if it does not exist
	Get(caseID string) (*Case, error)
	// List returns the cases matching all active filters, ordered by case id
	List(filters CaseFilters) ([]Case, error)
	// Update replaces all mutable fields of a case
	Update(caseID string, c Case) error
	// Delete removes a case together with its updates
	Delete(caseID string) error
	// Count returns the number of stored cases
	Count() (int64, error)
}
