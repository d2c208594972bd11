package models

// Entity types stored in the key-value store
const (
	EntityPropertyQuery = "property_query"
	EntityGeneralQuery  = "general_query"
	EntityBroker        = "broker"
	EntityProperty      = "property"
	EntityPreLaunch     = "pre_launch"
)

// QueryType tells property-specific enquiries apart from general ones
type QueryType string

const (
	QueryProperty QueryType = "property"
	QueryGeneral  QueryType = "general"
)

// PropertyQuery is a contact request submitted from a listing page or the
// general contact form.
type PropertyQuery struct {
	FirstName       string    `json:"firstName" binding:"required,max=60"`
	LastName        string    `json:"lastName" binding:"max=60"`
	Phone           string    `json:"phone" binding:"required,min=8,max=20"`
	Email           string    `json:"email" binding:"omitempty,email"`
	Message         string    `json:"message" binding:"max=2000"`
	PropertyID      string    `json:"propertyId"`
	PropertyTitle   string    `json:"propertyTitle"`
	PropertyURL     string    `json:"propertyUrl" binding:"omitempty,url"`
	RequirementType string    `json:"requirement"`
	PropertyType    string    `json:"propertyType"`
	Purpose         string    `json:"purpose"`
	Location        string    `json:"location"`
	Budget          string    `json:"budget"`
	Type            QueryType `json:"type"`
}

// Entity returns the store entity the query belongs to
func (q *PropertyQuery) Entity() string {
	if q.PropertyID != "" || q.Type == QueryProperty {
		return EntityPropertyQuery
	}
	return EntityGeneralQuery
}

// BrokerApplication is a become-a-broker submission
type BrokerApplication struct {
	FullName        string   `json:"fullName" binding:"required,max=100"`
	PrimaryMobile   string   `json:"primaryMobile" binding:"required,min=8,max=20"`
	AlternateMobile string   `json:"alternateMobile" binding:"max=20"`
	Email           string   `json:"email" binding:"omitempty,email"`
	AgencyName      string   `json:"agencyName"`
	OfficeAddress   string   `json:"officeAddress"`
	City            string   `json:"city" binding:"required"`
	WorkingAreas    string   `json:"workingAreas"`
	ReraNumber      string   `json:"reraNumber"`
	GSTNumber       string   `json:"gstNumber"`
	ContactMode     string   `json:"contactMode"`
	WorkingHours    string   `json:"workingHours"`
	TeamSize        string   `json:"teamSize"`
	PropertyTypes   []string `json:"propertyTypes"`
	Services        []string `json:"services"`
	AverageDealSize string   `json:"averageDealSize"`
}
