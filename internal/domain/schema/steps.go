package schema

import "strings"

// Draft kinds. The draft store uses the same values for its draft_type column.
const (
	KindProperty  = "PROPERTY"
	KindProject   = "PROJECT"
	KindDeveloper = "DEVELOPER"
	KindPGHostel  = "PG_HOSTEL"
)

// StepID names one section of a multi-step listing form.
type StepID string

// Property form steps
const (
	StepPropertyType       StepID = "property-type"
	StepLocationSelection  StepID = "location-selection"
	StepBasicDetails       StepID = "basic-details"
	StepBasicConfiguration StepID = "basic-configuration"
	StepUnitAmenities      StepID = "unit-amenities"
	StepLocationAttributes StepID = "location-attributes"
	StepFloorDetails       StepID = "floor-details"
	StepLandAttributes     StepID = "land-attributes"
	StepPricing            StepID = "pricing"
	StepListingInfo        StepID = "listing-info"
	StepPropertyAmenities  StepID = "property-amenities"
	StepMediaUpload        StepID = "media-upload"
	StepParkingUtilities   StepID = "parking-utilities"
	StepSuitableFor        StepID = "suitable-for"
)

// Developer, project and PG/hostel form steps. basic-details, pricing,
// amenities and media-upload are shared ids whose schema depends on the kind.
const (
	StepBasicInfo         StepID = "basic-info"
	StepLocationDetails   StepID = "location-details"
	StepConfigurations    StepID = "configurations"
	StepAmenities         StepID = "amenities"
	StepLegalDocs         StepID = "legal-docs"
	StepAdditionalInfo    StepID = "additional-info"
	StepRoomTypes         StepID = "room-types"
	StepFoodMess          StepID = "food-mess"
	StepRulesRestrictions StepID = "rules-restrictions"
	StepAvailability      StepID = "availability"
)

// PropertyType is the value chosen in the property-type step.
type PropertyType string

const (
	Apartment        PropertyType = "apartment"
	Penthouse        PropertyType = "penthouse"
	Villa            PropertyType = "villa"
	Duplex           PropertyType = "duplex"
	IndependentHouse PropertyType = "independent_house"
	IndependentFloor PropertyType = "independent_floor"
	Farmhouse        PropertyType = "farmhouse"
	ResidentialPlot  PropertyType = "residential_plot"
	CommercialPlot   PropertyType = "commercial_plot"
	IndustrialPlot   PropertyType = "industrial_plot"
	AgriculturalLand PropertyType = "agricultural_land"
)

// Step is a step id with its display name.
type Step struct {
	ID   StepID `json:"id"`
	Name string `json:"name"`
}

var stepNames = map[StepID]string{
	StepPropertyType:       "Property Type",
	StepLocationSelection:  "Location",
	StepBasicDetails:       "Basic Details",
	StepBasicConfiguration: "Configuration",
	StepUnitAmenities:      "Unit Amenities",
	StepLocationAttributes: "Location Attributes",
	StepFloorDetails:       "Floor Details",
	StepLandAttributes:     "Land Attributes",
	StepPricing:            "Pricing",
	StepListingInfo:        "Listing Information",
	StepPropertyAmenities:  "Property Amenities",
	StepMediaUpload:        "Media Upload",
	StepParkingUtilities:   "Parking & Utilities",
	StepSuitableFor:        "Suitable For",
	StepBasicInfo:          "Basic Information",
	StepLocationDetails:    "Location Details",
	StepConfigurations:     "Configurations",
	StepAmenities:          "Amenities",
	StepLegalDocs:          "Legal Documents",
	StepAdditionalInfo:     "Additional Information",
	StepRoomTypes:          "Room Types",
	StepFoodMess:           "Food & Mess",
	StepRulesRestrictions:  "Rules & Restrictions",
	StepAvailability:       "Availability",
}

var (
	defaultPropertySteps = []StepID{StepPropertyType, StepLocationSelection, StepBasicDetails}

	buildingSteps = []StepID{
		StepPropertyType, StepLocationSelection, StepBasicDetails, StepBasicConfiguration,
		StepUnitAmenities, StepLocationAttributes, StepParkingUtilities, StepPricing,
		StepSuitableFor, StepListingInfo, StepPropertyAmenities, StepMediaUpload,
	}

	stackedBuildingSteps = []StepID{
		StepPropertyType, StepLocationSelection, StepBasicDetails, StepBasicConfiguration,
		StepUnitAmenities, StepLocationAttributes, StepFloorDetails, StepParkingUtilities,
		StepPricing, StepSuitableFor, StepListingInfo, StepPropertyAmenities, StepMediaUpload,
	}

	farmhouseSteps = []StepID{
		StepPropertyType, StepLocationSelection, StepBasicDetails, StepLandAttributes,
		StepBasicConfiguration, StepUnitAmenities, StepLocationAttributes, StepParkingUtilities,
		StepPricing, StepSuitableFor, StepListingInfo, StepPropertyAmenities, StepMediaUpload,
	}

	landSteps = []StepID{
		StepPropertyType, StepLocationSelection, StepBasicDetails, StepLandAttributes,
		StepPricing, StepListingInfo, StepPropertyAmenities, StepMediaUpload,
	}
)

// propertyTypeSteps is read-only after init; accessors hand out copies.
var propertyTypeSteps = map[PropertyType][]StepID{
	Apartment:        stackedBuildingSteps,
	Penthouse:        stackedBuildingSteps,
	Villa:            buildingSteps,
	Duplex:           buildingSteps,
	IndependentHouse: buildingSteps,
	IndependentFloor: buildingSteps,
	Farmhouse:        farmhouseSteps,
	ResidentialPlot:  landSteps,
	CommercialPlot:   landSteps,
	IndustrialPlot:   landSteps,
	AgriculturalLand: landSteps,
}

var propertyTypeOrder = []PropertyType{
	Apartment, Penthouse, Villa, Duplex, IndependentHouse, IndependentFloor,
	Farmhouse, ResidentialPlot, CommercialPlot, IndustrialPlot, AgriculturalLand,
}

var kindSteps = map[string][]StepID{
	KindDeveloper: {StepBasicInfo},
	KindProject: {
		StepBasicDetails, StepLocationDetails, StepConfigurations, StepPricing,
		StepAmenities, StepLegalDocs, StepMediaUpload, StepAdditionalInfo,
	},
	KindPGHostel: {
		StepBasicDetails, StepLocationDetails, StepRoomTypes, StepAmenities,
		StepFoodMess, StepRulesRestrictions, StepAvailability, StepMediaUpload,
	},
}

var requiredSteps = map[string][]StepID{
	KindProperty:  {StepLocationSelection, StepBasicDetails, StepPricing, StepMediaUpload},
	KindProject:   {StepBasicDetails, StepLocationDetails},
	KindDeveloper: {StepBasicInfo},
	KindPGHostel:  {StepBasicDetails, StepLocationDetails},
}

// stepAliases maps the camelCase keys used by newer form versions onto
// canonical step ids.
var stepAliases = map[string]StepID{
	"propertyType":       StepPropertyType,
	"locationSelection":  StepLocationSelection,
	"basicDetails":       StepBasicDetails,
	"basicConfiguration": StepBasicConfiguration,
	"unitAmenities":      StepUnitAmenities,
	"locationAttributes": StepLocationAttributes,
	"floorDetails":       StepFloorDetails,
	"landAttributes":     StepLandAttributes,
	"pricingInformation": StepPricing,
	"listingInformation": StepListingInfo,
	"listingInfo":        StepListingInfo,
	"propertyAmenities":  StepPropertyAmenities,
	"mediaUpload":        StepMediaUpload,
	"parkingUtilities":   StepParkingUtilities,
	"suitableFor":        StepSuitableFor,
	"basicInfo":          StepBasicInfo,
	"locationDetails":    StepLocationDetails,
	"legalDocs":          StepLegalDocs,
	"additionalInfo":     StepAdditionalInfo,
	"roomTypes":          StepRoomTypes,
	"foodMess":           StepFoodMess,
	"rulesRestrictions":  StepRulesRestrictions,
}

// CanonicalStepID resolves camelCase aliases; unknown ids pass through trimmed.
func CanonicalStepID(id string) StepID {
	id = strings.TrimSpace(id)
	if canonical, ok := stepAliases[id]; ok {
		return canonical
	}
	return StepID(id)
}

// StepIDs returns the ordered step ids for a property type. Unknown types get
// the default three steps.
func StepIDs(pt PropertyType) []StepID {
	steps, ok := propertyTypeSteps[pt]
	if !ok {
		steps = defaultPropertySteps
	}
	return append([]StepID(nil), steps...)
}

// KindStepIDs returns the ordered step ids for a non-property draft kind.
func KindStepIDs(kind string) []StepID {
	return append([]StepID(nil), kindSteps[kind]...)
}

// RequiredSteps returns the steps a draft of the given kind must contain.
func RequiredSteps(kind string) []StepID {
	return append([]StepID(nil), requiredSteps[kind]...)
}

// VisibleSteps returns the steps with display names.
func VisibleSteps(pt PropertyType) []Step {
	ids := StepIDs(pt)
	out := make([]Step, len(ids))
	for i, id := range ids {
		out[i] = Step{ID: id, Name: StepName(id)}
	}
	return out
}

// StepName returns the display name, or the id itself when unnamed.
func StepName(id StepID) string {
	if name, ok := stepNames[id]; ok {
		return name
	}
	return string(id)
}

func IsStepVisible(pt PropertyType, id StepID) bool {
	return StepIndex(pt, id) >= 0
}

// StepIndex returns the position of id in the property type's flow, or -1.
func StepIndex(pt PropertyType, id StepID) int {
	steps, ok := propertyTypeSteps[pt]
	if !ok {
		steps = defaultPropertySteps
	}
	for i, s := range steps {
		if s == id {
			return i
		}
	}
	return -1
}

// PropertyTypes lists the supported property types in display order.
func PropertyTypes() []PropertyType {
	return append([]PropertyType(nil), propertyTypeOrder...)
}

func IsKnownPropertyType(pt PropertyType) bool {
	_, ok := propertyTypeSteps[pt]
	return ok
}

// IsBuildingType reports whether the flow includes a basic configuration step.
func IsBuildingType(pt PropertyType) bool {
	return IsStepVisible(pt, StepBasicConfiguration)
}

// IsLandType reports whether the flow includes land attributes.
func IsLandType(pt PropertyType) bool {
	return IsStepVisible(pt, StepLandAttributes)
}

// IsHybridType is true for types that are both, e.g. farmhouse.
func IsHybridType(pt PropertyType) bool {
	return IsBuildingType(pt) && IsLandType(pt)
}
