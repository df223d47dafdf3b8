package valueobject

import "fmt"

// KnownBankIDCode names the national numbering scheme a bank id follows.
type KnownBankIDCode struct {
	value string
}

// Known bank id codes.
var (
	BankIDCodeGBDSC = KnownBankIDCode{"GBDSC"} // UK sort code
	BankIDCodeAUBSB = KnownBankIDCode{"AUBSB"} // Australian BSB
	BankIDCodeBE    = KnownBankIDCode{"BE"}
	BankIDCodeCACPA = KnownBankIDCode{"CACPA"}
	BankIDCodeFR    = KnownBankIDCode{"FR"}
	BankIDCodeDEBLZ = KnownBankIDCode{"DEBLZ"} // Bankleitzahl
	BankIDCodeGRBIC = KnownBankIDCode{"GRBIC"}
	BankIDCodeHKNCC = KnownBankIDCode{"HKNCC"}
	BankIDCodeITNCC = KnownBankIDCode{"ITNCC"}
	BankIDCodeLULUX = KnownBankIDCode{"LULUX"}
	BankIDCodePLKNR = KnownBankIDCode{"PLKNR"}
	BankIDCodePTNCC = KnownBankIDCode{"PTNCC"}
	BankIDCodeESNCC = KnownBankIDCode{"ESNCC"}
	BankIDCodeCHBCC = KnownBankIDCode{"CHBCC"}
	BankIDCodeUSABA = KnownBankIDCode{"USABA"} // ABA routing number
)

var knownBankIDCodes = map[string]KnownBankIDCode{
	"GBDSC": BankIDCodeGBDSC,
	"AUBSB": BankIDCodeAUBSB,
	"BE":    BankIDCodeBE,
	"CACPA": BankIDCodeCACPA,
	"FR":    BankIDCodeFR,
	"DEBLZ": BankIDCodeDEBLZ,
	"GRBIC": BankIDCodeGRBIC,
	"HKNCC": BankIDCodeHKNCC,
	"ITNCC": BankIDCodeITNCC,
	"LULUX": BankIDCodeLULUX,
	"PLKNR": BankIDCodePLKNR,
	"PTNCC": BankIDCodePTNCC,
	"ESNCC": BankIDCodeESNCC,
	"CHBCC": BankIDCodeCHBCC,
	"USABA": BankIDCodeUSABA,
}

// ParseKnownBankIDCode converts a scheme code such as "GBDSC" to a KnownBankIDCode.
func ParseKnownBankIDCode(s string) (KnownBankIDCode, error) {
	code, ok := knownBankIDCodes[s]
	if !ok {
		return KnownBankIDCode{}, fmt.Errorf("%s is not known bank id code variant", s)
	}
	return code, nil
}

// String returns the scheme code.
func (c KnownBankIDCode) String() string { return c.value }

// IsZero returns true if the code is empty.
func (c KnownBankIDCode) IsZero() bool { return c.value == "" }

// Equal returns true if two codes are equal.
func (c KnownBankIDCode) Equal(other KnownBankIDCode) bool { return c.value == other.value }
