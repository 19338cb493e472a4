package pid

import "fmt"

// Flavor enumerates the event categories delivered by the reconstruction
// stage: charged-current nue/numu/nutau plus all-flavour neutral current.
type Flavor int

const (
	NueCC Flavor = iota
	NumuCC
	NutauCC
	NuallNC
)

var flavorStrings = []string{
	"nue_cc",
	"numu_cc",
	"nutau_cc",
	"nuall_nc",
}

func (f Flavor) String() string {
	if f < NueCC || f > NuallNC {
		return "unknown"
	}
	return flavorStrings[f]
}

func ParseFlavor(s string) (Flavor, error) {
	for i, v := range flavorStrings {
		if v == s {
			return Flavor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown flavour %q", s)
}

// AllFlavors returns the categories in canonical order.
func AllFlavors() []Flavor {
	return []Flavor{NueCC, NumuCC, NutauCC, NuallNC}
}
