package enums

import "fmt"

// VehicleCondition describes the state of a listed vehicle.
type VehicleCondition string

const (
	VehicleConditionNew         VehicleCondition = "new"
	VehicleConditionUsed        VehicleCondition = "used"
	VehicleConditionRefurbished VehicleCondition = "refurbished"
	VehicleConditionDamaged     VehicleCondition = "damaged"
)

var validVehicleConditions = []VehicleCondition{
	VehicleConditionNew,
	VehicleConditionUsed,
	VehicleConditionRefurbished,
	VehicleConditionDamaged,
}

func (c VehicleCondition) String() string {
	return string(c)
}

func (c VehicleCondition) IsValid() bool {
	for _, candidate := range validVehicleConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseVehicleCondition converts raw input into a VehicleCondition.
func ParseVehicleCondition(value string) (VehicleCondition, error) {
	for _, candidate := range validVehicleConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle condition %q", value)
}

// FuelType describes the powertrain energy source.
type FuelType string

const (
	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
	FuelTypeLPG      FuelType = "lpg"
	FuelTypeCNG      FuelType = "cng"
)

var validFuelTypes = []FuelType{
	FuelTypePetrol,
	FuelTypeDiesel,
	FuelTypeElectric,
	FuelTypeHybrid,
	FuelTypeLPG,
	FuelTypeCNG,
}

func (f FuelType) String() string {
	return string(f)
}

func (f FuelType) IsValid() bool {
	for _, candidate := range validFuelTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFuelType converts raw input into a FuelType.
func ParseFuelType(value string) (FuelType, error) {
	for _, candidate := range validFuelTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fuel type %q", value)
}

// Transmission describes the gearbox kind.
type Transmission string

const (
	TransmissionManual        Transmission = "manual"
	TransmissionAutomatic     Transmission = "automatic"
	TransmissionSemiAutomatic Transmission = "semi-automatic"
	TransmissionCVT           Transmission = "cvt"
)

var validTransmissions = []Transmission{
	TransmissionManual,
	TransmissionAutomatic,
	TransmissionSemiAutomatic,
	TransmissionCVT,
}

func (t Transmission) String() string {
	return string(t)
}

func (t Transmission) IsValid() bool {
	for _, candidate := range validTransmissions {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransmission converts raw input into a Transmission. The underscore
// spelling of semi-automatic is accepted for compatibility with older clients.
func ParseTransmission(value string) (Transmission, error) {
	if value == "semi_automatic" {
		return TransmissionSemiAutomatic, nil
	}
	for _, candidate := range validTransmissions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transmission %q", value)
}
