package schema

import (
	"strconv"
	"strings"
)

var propertySchemas = map[StepID]func() any{
	StepPropertyType:       func() any { return &PropertyTypeStep{} },
	StepLocationSelection:  func() any { return &LocationSelection{} },
	StepBasicDetails:       func() any { return &BasicDetails{} },
	StepBasicConfiguration: func() any { return &BasicConfiguration{} },
	StepUnitAmenities:      func() any { return &UnitAmenities{} },
	StepLocationAttributes: func() any { return &LocationAttributes{} },
	StepFloorDetails:       func() any { return &FloorDetails{} },
	StepLandAttributes:     func() any { return &LandAttributes{} },
	StepParkingUtilities:   func() any { return &ParkingUtilities{} },
	StepPricing:            func() any { return &Pricing{} },
	StepSuitableFor:        func() any { return &SuitableFor{} },
	StepListingInfo:        func() any { return &ListingInfo{} },
	StepPropertyAmenities:  func() any { return &PropertyAmenities{} },
	StepMediaUpload:        func() any { return &MediaUpload{} },
}

func custom(field, message string) FieldError {
	return newFieldError(field, CodeCustom, message)
}

func number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

type PropertyTypeStep struct {
	PropertyType string `json:"propertyType" validate:"required,oneof=apartment penthouse villa duplex independent_house independent_floor farmhouse residential_plot commercial_plot industrial_plot agricultural_land" msg:"Please select a property type"`
}

type Coordinates struct {
	Lat *float64 `json:"lat" validate:"required,lat"`
	Lng *float64 `json:"lng" validate:"required,lng"`
}

type NearbyLandmark struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Distance string `json:"distance" validate:"omitempty,max=50"`
	Type     string `json:"type" validate:"omitempty,max=50"`
}

type LocationSelection struct {
	City            string           `json:"city" validate:"required,max=100" msg:"City is required"`
	Locality        string           `json:"locality" validate:"required,max=200" msg:"Locality is required"`
	AddressText     string           `json:"addressText" validate:"required,max=500" msg:"Address is required"`
	Landmark        string           `json:"landmark" validate:"omitempty,max=200"`
	Coordinates     *Coordinates     `json:"coordinates" validate:"required" msg:"Please pin the location on the map"`
	ShowMapExact    bool             `json:"showMapExact"`
	NearbyLandmarks []NearbyLandmark `json:"nearbyLandmarks" validate:"omitempty,max=20,dive"`
}

type ReraID struct {
	ID string `json:"id" validate:"required,max=100" msg:"RERA ID is required"`
}

type BasicDetails struct {
	ListingType              string   `json:"listingType" validate:"required,oneof=sale rent lease" msg:"Please select listing type"`
	OwnershipType            string   `json:"ownershipType" validate:"required,oneof=freehold leasehold poa co_operative" msg:"Please select ownership type"`
	ProjectName              string   `json:"projectName" validate:"omitempty,min=4,max=200"`
	CustomPropertyName       string   `json:"customPropertyName" validate:"omitempty,max=200"`
	ReraIDs                  []ReraID `json:"reraIds" validate:"omitempty,dive"`
	AgeOfProperty            string   `json:"ageOfProperty" validate:"required,nonnegnumstr" msg:"Age of property must be a non-negative number"`
	IsNewProperty            bool     `json:"isNewProperty"`
	PossessionStatus         string   `json:"possessionStatus" validate:"required,oneof=ready under_construction resale" msg:"Please select possession status"`
	PossessionDate           string   `json:"possessionDate"`
	AvailableFrom            string   `json:"availableFrom"`
	PropertyFacingRoadWidth  string   `json:"propertyFacingRoadWidth" validate:"omitempty,posnumstr"`
	TotalUnitsInProject      string   `json:"totalUnitsInProject" validate:"omitempty,posnumstr"`
	BuilderDeveloperName     string   `json:"builderDeveloperName" validate:"omitempty,max=200"`
	HasOccupancyCertificate  bool     `json:"hasOccupancyCertificate"`
	OccupancyCertificateURL  string   `json:"occupancyCertificateUrl" validate:"omitempty,url"`
	HasCompletionCertificate bool     `json:"hasCompletionCertificate"`
	CompletionCertificateURL string   `json:"completionCertificateUrl" validate:"omitempty,url"`
	WaterSupplySource        string   `json:"waterSupplySource" validate:"omitempty,oneof=municipal borewell tanker mixed other"`
	ElectricityProvider      string   `json:"electricityProvider" validate:"omitempty,max=100"`
	WasteManagement          string   `json:"wasteManagement" validate:"omitempty,oneof=municipal private none"`
	SewerageType             string   `json:"sewerageType" validate:"omitempty,oneof=municipal septic_tank none"`
}

func (b *BasicDetails) Refine() []FieldError {
	if b.PossessionStatus == "under_construction" && strings.TrimSpace(b.PossessionDate) == "" {
		return []FieldError{custom("possessionDate", "Expected possession date is required for properties under construction")}
	}
	return nil
}

type BasicConfiguration struct {
	Bedrooms         string `json:"bedrooms" validate:"required,nonnegnumstr"`
	Bathrooms        string `json:"bathrooms" validate:"required,nonnegnumstr"`
	Balconies        string `json:"balconies" validate:"omitempty,nonnegnumstr"`
	CarpetArea       string `json:"carpetArea" validate:"required,posnumstr" msg:"Carpet area must be a positive number"`
	BuiltUpArea      string `json:"builtUpArea" validate:"omitempty,posnumstr"`
	SuperBuiltUpArea string `json:"superBuiltUpArea" validate:"omitempty,posnumstr"`
	AreaUnit         string `json:"areaUnit" validate:"required,oneof=sqft sqm sqyd" msg:"Please select an area unit"`
	FurnishingStatus string `json:"furnishingStatus" validate:"required,oneof=unfurnished semi_furnished fully_furnished" msg:"Please select furnishing status"`
}

func (c *BasicConfiguration) Refine() []FieldError {
	var errs []FieldError
	carpet, okCarpet := number(c.CarpetArea)
	builtUp, okBuiltUp := number(c.BuiltUpArea)
	superBuiltUp, okSuper := number(c.SuperBuiltUpArea)
	if okCarpet && okBuiltUp && builtUp < carpet {
		errs = append(errs, custom("builtUpArea", "Built-up area cannot be smaller than carpet area"))
	}
	if okBuiltUp && okSuper && superBuiltUp < builtUp {
		errs = append(errs, custom("superBuiltUpArea", "Super built-up area cannot be smaller than built-up area"))
	}
	return errs
}

type UnitAmenities struct {
	Amenities []string `json:"amenities" validate:"omitempty,dive,required,max=100"`
}

type LocationAttributes struct {
	Facing           string   `json:"facing" validate:"omitempty,oneof=north south east west north_east north_west south_east south_west"`
	View             string   `json:"view" validate:"omitempty,max=100"`
	IsCornerProperty bool     `json:"isCornerProperty"`
	ProximityTags    []string `json:"proximityTags" validate:"omitempty,dive,max=100"`
}

type FloorDetails struct {
	FloorNumber    string `json:"floorNumber" validate:"required,numericstr" msg:"Floor number is required"`
	TotalFloors    string `json:"totalFloors" validate:"required,posnumstr" msg:"Total floors must be a positive number"`
	LiftsAvailable string `json:"liftsAvailable" validate:"omitempty,nonnegnumstr"`
}

func (f *FloorDetails) Refine() []FieldError {
	floor, okFloor := number(f.FloorNumber)
	total, okTotal := number(f.TotalFloors)
	if okFloor && okTotal && floor > total {
		return []FieldError{custom("floorNumber", "Floor number cannot exceed total floors")}
	}
	return nil
}

type LandAttributes struct {
	PlotArea                     string `json:"plotArea" validate:"required,posnumstr" msg:"Plot area must be a positive number"`
	AreaUnit                     string `json:"areaUnit" validate:"required,oneof=sqft sqm acre bigha kanal gaj" msg:"Please select an area unit"`
	PlotDimension                string `json:"plotDimension" validate:"omitempty,max=50"`
	RoadWidth                    string `json:"roadWidth" validate:"omitempty,posnumstr" msg:"Road width must be a positive number"`
	Fencing                      bool   `json:"fencing"`
	IrrigationSource             string `json:"irrigationSource" validate:"omitempty,max=100"`
	TerrainLevel                 string `json:"terrainLevel" validate:"omitempty,oneof=flat elevated sloped"`
	SoilType                     string `json:"soilType" validate:"omitempty,oneof=black red sandy clay loamy"`
	LegalStatus                  string `json:"legalStatus" validate:"omitempty,oneof=clear_title disputed poa under_litigation encumbered leasehold freehold other"`
	BoundaryWallType             string `json:"boundaryWallType" validate:"omitempty,oneof=brick concrete wire_fence iron_fence compound_wall none partial other"`
	HasDrainage                  string `json:"hasDrainage" validate:"omitempty,oneof=yes no planned"`
	SurveyNumber                 string `json:"surveyNumber" validate:"omitempty,max=100" msg:"Survey number is too long"`
	PlotID                       string `json:"plotId" validate:"omitempty,max=100" msg:"Plot ID is too long"`
	LandConversionCertificateURL string `json:"landConversionCertificateUrl" validate:"omitempty,url"`
	OwnershipProofURL            string `json:"ownershipProofUrl" validate:"omitempty,url"`
	TopographyMapURL             string `json:"topographyMapUrl" validate:"omitempty,url"`
	SurveyDocumentURL            string `json:"surveyDocumentUrl" validate:"omitempty,url"`
}

type ParkingUtilities struct {
	CoveredParking       string `json:"coveredParking" validate:"required,nonnegnumstr" msg:"Covered parking count is required"`
	OpenParking          string `json:"openParking" validate:"required,nonnegnumstr" msg:"Open parking count is required"`
	PowerBackup          string `json:"powerBackup" validate:"required,oneof=none partial full" msg:"Power backup information is required"`
	EVChargingType       string `json:"evChargingType" validate:"omitempty,oneof=none ac_slow dc_fast both"`
	EVChargingPoints     string `json:"evChargingPoints"`
	HasVisitorParking    bool   `json:"hasVisitorParking"`
	VisitorParkingSpaces string `json:"visitorParkingSpaces"`
	ParkingType          string `json:"parkingType" validate:"required,oneof=reserved shared first_come" msg:"Parking type is required"`
	ParkingSecurityType  string `json:"parkingSecurityType" validate:"omitempty,oneof=guarded cctv gated none multiple"`
}

func (p *ParkingUtilities) Refine() []FieldError {
	var errs []FieldError
	if p.EVChargingType != "" && p.EVChargingType != "none" {
		if strings.TrimSpace(p.EVChargingPoints) == "" {
			errs = append(errs, custom("evChargingPoints", "EV charging points are required when EV charging is enabled"))
		} else if n, ok := number(p.EVChargingPoints); !ok || n <= 0 {
			errs = append(errs, custom("evChargingPoints", "EV charging points must be a positive number"))
		}
	}
	if p.HasVisitorParking {
		if strings.TrimSpace(p.VisitorParkingSpaces) == "" {
			errs = append(errs, custom("visitorParkingSpaces", "Visitor parking spaces are required when visitor parking is enabled"))
		} else if n, ok := number(p.VisitorParkingSpaces); !ok || n <= 0 {
			errs = append(errs, custom("visitorParkingSpaces", "Visitor parking spaces must be a positive number"))
		}
	}
	return errs
}

type PriceComponent struct {
	Type  string `json:"type" validate:"required,max=50" msg:"Price type is required"`
	Unit  string `json:"unit" validate:"required,max=50" msg:"Price unit is required"`
	Value string `json:"value" validate:"required,posnumstr" msg:"Price must be a positive number"`
}

type Pricing struct {
	Pricing             []PriceComponent `json:"pricing" validate:"required,min=1,dive" msg:"Add at least one price"`
	IsPriceVerified     bool             `json:"isPriceVerified"`
	IsPriceNegotiable   bool             `json:"isPriceNegotiable"`
	MaintenanceIncludes []string         `json:"maintenanceIncludes" validate:"omitempty,dive,max=100"`
	SecurityDeposit     string           `json:"securityDeposit" validate:"omitempty,nonnegnumstr"`
	MaintenanceCharges  string           `json:"maintenanceCharges" validate:"omitempty,nonnegnumstr"`
}

type VisitingHours struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SuitableFor struct {
	ListingType              string         `json:"listingType"`
	SuitableFor              []string       `json:"suitableFor" validate:"omitempty,dive,oneof=family bachelors company students"`
	SmokingAllowed           bool           `json:"smokingAllowed"`
	PetsAllowed              bool           `json:"petsAllowed"`
	PetsType                 []string       `json:"petsType" validate:"omitempty,dive,oneof=dogs cats birds small_pets all_pets"`
	SubleasingAllowed        bool           `json:"subleasingAllowed"`
	MinimumStayDuration      string         `json:"minimumStayDuration" validate:"omitempty,oneof=1_month 3_months 6_months 1_year 2_years 3_years negotiable"`
	VisitingHoursRestriction bool           `json:"visitingHoursRestriction"`
	VisitingHours            *VisitingHours `json:"visitingHours"`
	GuestStayAllowed         *bool          `json:"guestStayAllowed"`
}

func (s *SuitableFor) Refine() []FieldError {
	if (s.ListingType == "rent" || s.ListingType == "lease") && len(s.SuitableFor) == 0 {
		return []FieldError{custom("suitableFor", "Please select at least one option for suitable tenants")}
	}
	return nil
}

type ListingInfo struct {
	Title       string `json:"title" validate:"required,min=10,max=100" msg:"Title must be between 10 and 100 characters"`
	Description string `json:"description" validate:"required,min=50,max=5000" msg:"Description must be between 50 and 5000 characters"`
}

type PropertyAmenities struct {
	Features  []string `json:"features" validate:"omitempty,dive,required,max=100"`
	Amenities []string `json:"amenities" validate:"omitempty,dive,required,max=100"`
}

type MediaItem struct {
	URL      string `json:"url" validate:"required,url" msg:"A valid media URL is required"`
	DocType  string `json:"docType" validate:"omitempty,oneof=media document floor_plan video"`
	FileSize int64  `json:"fileSize" validate:"gte=0"`
	Title    string `json:"title" validate:"omitempty,max=200"`
}

type MediaUpload struct {
	MediaData []MediaItem `json:"mediaData" validate:"required,min=1,dive" msg:"Upload at least one photo or document"`
}
