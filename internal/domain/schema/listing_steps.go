package schema

import (
	"strconv"
	"time"
)

var developerSchemas = map[StepID]func() any{
	StepBasicInfo: func() any { return &DeveloperBasicInfo{} },
}

var projectSchemas = map[StepID]func() any{
	StepBasicDetails:    func() any { return &ProjectBasicDetails{} },
	StepLocationDetails: func() any { return &LocationDetails{} },
	StepConfigurations:  func() any { return &ProjectConfigurations{} },
	StepPricing:         func() any { return &ProjectPricing{} },
	StepAmenities:       func() any { return &Amenities{} },
	StepLegalDocs:       func() any { return &ProjectLegalDocs{} },
	StepMediaUpload:     func() any { return &ProjectMedia{} },
	StepAdditionalInfo:  func() any { return &ProjectAdditionalInfo{} },
}

var pgHostelSchemas = map[StepID]func() any{
	StepBasicDetails:      func() any { return &PGHostelBasicDetails{} },
	StepLocationDetails:   func() any { return &LocationDetails{} },
	StepRoomTypes:         func() any { return &RoomTypes{} },
	StepAmenities:         func() any { return &Amenities{} },
	StepFoodMess:          func() any { return &FoodMess{} },
	StepRulesRestrictions: func() any { return &RulesRestrictions{} },
	StepAvailability:      func() any { return &Availability{} },
	StepMediaUpload:       func() any { return &MediaUpload{} },
}

// DeveloperBasicInfo is the single step of a developer profile draft.
type DeveloperBasicInfo struct {
	DeveloperName             string `json:"developerName" validate:"required,min=2,max=200" msg:"Developer name is required"`
	DeveloperType             string `json:"developerType" validate:"omitempty,oneof=builder individual company partnership llp"`
	Description               string `json:"description" validate:"omitempty,max=5000"`
	EstablishedYear           string `json:"establishedYear" validate:"omitempty,numericstr"`
	Website                   string `json:"website" validate:"omitempty,url"`
	LogoURL                   string `json:"logoUrl" validate:"omitempty,url"`
	ContactEmail              string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone              string `json:"contactPhone" validate:"omitempty,phone"`
	Headquarters              string `json:"headquarters" validate:"omitempty,max=200"`
	ProjectsCompleted         string `json:"projectsCompleted" validate:"omitempty,nonnegnumstr"`
	SubscribeForDeveloperPage bool   `json:"subscribeForDeveloperPage"`
}

func (d *DeveloperBasicInfo) Refine() []FieldError {
	if d.EstablishedYear == "" {
		return nil
	}
	year, err := strconv.Atoi(d.EstablishedYear)
	if err != nil || year < 1800 || year > time.Now().Year() {
		return []FieldError{custom("establishedYear", "Established year must be a valid past year")}
	}
	return nil
}

type ProjectBasicDetails struct {
	ProjectName    string `json:"projectName" validate:"required,min=3,max=200" msg:"Project name is required"`
	ProjectType    string `json:"projectType" validate:"omitempty,oneof=residential commercial mixed"`
	ProjectStatus  string `json:"projectStatus" validate:"omitempty,oneof=upcoming ongoing completed"`
	Description    string `json:"description" validate:"omitempty,max=5000"`
	DeveloperName  string `json:"developerName" validate:"omitempty,max=200"`
	DeveloperID    string `json:"developerId" validate:"omitempty,uuid"`
	LaunchDate     string `json:"launchDate"`
	PossessionDate string `json:"possessionDate"`
	CompletionDate string `json:"completionDate"`
}

func (p *ProjectBasicDetails) Refine() []FieldError {
	if p.ProjectStatus == "completed" && p.CompletionDate == "" {
		return []FieldError{custom("completionDate", "Completion date is required for completed projects")}
	}
	return nil
}

// LocationDetails is shared by project and PG/hostel drafts.
type LocationDetails struct {
	City        string       `json:"city" validate:"required,max=100" msg:"City is required"`
	Locality    string       `json:"locality" validate:"required,max=200" msg:"Locality is required"`
	Area        string       `json:"area" validate:"omitempty,max=200"`
	AddressText string       `json:"addressText" validate:"omitempty,max=500"`
	Landmark    string       `json:"landmark" validate:"omitempty,max=200"`
	Pincode     string       `json:"pincode" validate:"omitempty,numeric,len=6"`
	Coordinates *Coordinates `json:"coordinates" validate:"required" msg:"Please pin the location on the map"`
}

type UnitConfiguration struct {
	Type       string `json:"type" validate:"required,max=50" msg:"Configuration type is required"`
	CarpetArea string `json:"carpetArea" validate:"omitempty,posnumstr"`
	AreaUnit   string `json:"areaUnit" validate:"omitempty,oneof=sqft sqm sqyd"`
	Units      string `json:"units" validate:"omitempty,nonnegnumstr"`
}

type ProjectConfigurations struct {
	TotalUnits     string              `json:"totalUnits" validate:"omitempty,posnumstr"`
	TotalTowers    string              `json:"totalTowers" validate:"omitempty,posnumstr"`
	TotalAcres     string              `json:"totalAcres" validate:"omitempty,posnumstr"`
	Configurations []UnitConfiguration `json:"configurations" validate:"omitempty,dive"`
}

type PriceRange struct {
	Min string `json:"min" validate:"required,posnumstr" msg:"Minimum price must be a positive number"`
	Max string `json:"max" validate:"required,posnumstr" msg:"Maximum price must be a positive number"`
}

type ProjectPricing struct {
	PriceRange *PriceRange `json:"priceRange" validate:"required" msg:"Price range is required"`
	PriceUnit  string      `json:"priceUnit" validate:"omitempty,oneof=total per_sqft"`
}

func (p *ProjectPricing) Refine() []FieldError {
	if p.PriceRange == nil {
		return nil
	}
	lo, okLo := number(p.PriceRange.Min)
	hi, okHi := number(p.PriceRange.Max)
	if okLo && okHi && lo > hi {
		return []FieldError{custom("priceRange.max", "Maximum price cannot be below minimum price")}
	}
	return nil
}

// Amenities is shared by project and PG/hostel drafts.
type Amenities struct {
	Amenities []string `json:"amenities" validate:"omitempty,dive,required,max=100"`
	Features  []string `json:"features" validate:"omitempty,dive,required,max=100"`
}

type ProjectLegalDocs struct {
	ReraNumber         string   `json:"reraNumber" validate:"omitempty,max=100"`
	ReraCertificateURL string   `json:"reraCertificateUrl" validate:"omitempty,url"`
	ApprovalDocuments  []string `json:"approvalDocuments" validate:"omitempty,dive,url"`
}

type ProjectMedia struct {
	Images     []string `json:"images" validate:"omitempty,dive,url"`
	Videos     []string `json:"videos" validate:"omitempty,dive,url"`
	Brochure   string   `json:"brochure" validate:"omitempty,url"`
	FloorPlans []string `json:"floorPlans" validate:"omitempty,dive,url"`
}

type ProjectAdditionalInfo struct {
	Highlights   []string       `json:"highlights" validate:"omitempty,dive,max=200"`
	CustomFields map[string]any `json:"customFields"`
}

type PGHostelBasicDetails struct {
	PropertyName  string `json:"propertyName" validate:"required,min=3,max=200" msg:"Property name is required"`
	PropertyType  string `json:"propertyType" validate:"omitempty,oneof=pg hostel coliving"`
	GenderAllowed string `json:"genderAllowed" validate:"required,oneof=male female unisex" msg:"Please select who can stay"`
	Description   string `json:"description" validate:"omitempty,max=5000"`
	ManagedBy     string `json:"managedBy" validate:"omitempty,oneof=owner manager company"`
}

type RoomType struct {
	Type          string `json:"type" validate:"required,oneof=single double triple dormitory" msg:"Please select a room type"`
	Rent          string `json:"rent" validate:"required,posnumstr" msg:"Rent must be a positive number"`
	Deposit       string `json:"deposit" validate:"omitempty,nonnegnumstr"`
	TotalBeds     string `json:"totalBeds" validate:"omitempty,posnumstr"`
	AvailableBeds string `json:"availableBeds" validate:"omitempty,nonnegnumstr"`
	AttachedBath  bool   `json:"attachedBath"`
	AirCondition  bool   `json:"airConditioned"`
}

type RoomTypes struct {
	RoomTypes []RoomType `json:"roomTypes" validate:"required,min=1,dive" msg:"Add at least one room type"`
}

func (r *RoomTypes) Refine() []FieldError {
	var errs []FieldError
	for i, room := range r.RoomTypes {
		total, okTotal := number(room.TotalBeds)
		avail, okAvail := number(room.AvailableBeds)
		if okTotal && okAvail && avail > total {
			errs = append(errs, custom("roomTypes["+strconv.Itoa(i)+"].availableBeds", "Available beds cannot exceed total beds"))
		}
	}
	return errs
}

type FoodMess struct {
	FoodAvailable bool     `json:"foodAvailable"`
	FoodType      string   `json:"foodType" validate:"omitempty,oneof=veg non_veg both"`
	MealTypes     []string `json:"mealTypes" validate:"omitempty,dive,oneof=breakfast lunch dinner snacks"`
	MessCharges   string   `json:"messCharges" validate:"omitempty,nonnegnumstr"`
}

func (f *FoodMess) Refine() []FieldError {
	if f.FoodAvailable && len(f.MealTypes) == 0 {
		return []FieldError{custom("mealTypes", "Select at least one meal when food is provided")}
	}
	return nil
}

type RulesRestrictions struct {
	GateClosingTime  string   `json:"gateClosingTime" validate:"omitempty,max=20"`
	VisitorsAllowed  bool     `json:"visitorsAllowed"`
	SmokingAllowed   bool     `json:"smokingAllowed"`
	AlcoholAllowed   bool     `json:"alcoholAllowed"`
	NoticePeriodDays string   `json:"noticePeriodDays" validate:"omitempty,nonnegnumstr"`
	OtherRules       []string `json:"otherRules" validate:"omitempty,dive,max=200"`
}

type Availability struct {
	AvailableFrom     string `json:"availableFrom"`
	MinimumStayMonths string `json:"minimumStayMonths" validate:"omitempty,posnumstr"`
	TotalBeds         string `json:"totalBeds" validate:"omitempty,posnumstr"`
	AvailableBeds     string `json:"availableBeds" validate:"omitempty,nonnegnumstr"`
}
