// Package workbook converts cases and updates to and from a two-sheet xlsx
// workbook.
package workbook

// Sheet names
const (
	SheetCases   = "Cases"
	SheetUpdates = "Updates"
)

// Cases sheet columns
const (
	ColCaseID                = "Case ID"
	ColSellerID              = "Seller ID"
	ColSellerName            = "Seller Name"
	ColSpecialistID          = "Specialist ID"
	ColSpecialistName        = "Specialist Name"
	ColMarketplace           = "Marketplace"
	ColCaseSource            = "Case Source"
	ColCaseStatus            = "Case Status"
	ColWorkstream            = "Workstream"
	ColListingStartDate      = "Listing Start Date"
	ColListingCompletionDate = "Listing Completion Date"
	ColIssueType             = "Issue Type"
	ColComplexity            = "Complexity"
	ColPriority              = "Priority"
	ColAPISupported          = "API Supported"
	ColIntegrationType       = "Integration Type"
	ColSellerType            = "Seller Type"
	ColFeedbackReceived      = "Feedback Received"
	ColCSATScore             = "CSAT Score"
	ColNotes                 = "Notes"
	ColLastSubStatus         = "Last Sub-Status"
)

// Updates sheet columns; Case ID is shared with the Cases sheet
const (
	ColID        = "ID"
	ColNote      = "Note"
	ColUpdatedBy = "Updated By"
	ColTimestamp = "Timestamp"
	ColSubStatus = "Sub Status"
)

// CaseColumns is the fixed column order of the Cases sheet
var CaseColumns = []string{
	ColCaseID,
	ColSellerID,
	ColSellerName,
	ColSpecialistID,
	ColSpecialistName,
	ColMarketplace,
	ColCaseSource,
	ColCaseStatus,
	ColWorkstream,
	ColListingStartDate,
	ColListingCompletionDate,
	ColIssueType,
	ColComplexity,
	ColPriority,
	ColAPISupported,
	ColIntegrationType,
	ColSellerType,
	ColFeedbackReceived,
	ColCSATScore,
	ColNotes,
	ColLastSubStatus,
}

// UpdateColumns is the fixed column order of the Updates sheet
var UpdateColumns = []string{
	ColID,
	ColCaseID,
	ColNote,
	ColUpdatedBy,
	ColTimestamp,
	ColSubStatus,
}

// listSeparator joins list values in a single cell
const listSeparator = ", "

// timestampLayout is used for exported timestamps; the fraction is only
// written when the timestamp has sub-second precision.
const (
	timestampLayout         = "2006-01-02T15:04:05"
	timestampFractionLayout = "2006-01-02T15:04:05.000000"
	dateLayout              = "2006-01-02"
)

// ContentType is the media type of the produced workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
