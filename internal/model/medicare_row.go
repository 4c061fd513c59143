package model

// MedicareRow is one prescriber/drug utilization line from the CMS Medicare
// Part D file, written to Parquet by the medicare-prep subcommand. Derived
// cost columns are optional: they stay null when the denominator is zero.
type MedicareRow struct {
	PrescriberNPI  string `parquet:"Prscrbr_NPI"`
	PrescriberName string `parquet:"Prscrbr_Last_Org_Name"`
	State          string `parquet:"Prscrbr_State_Abrvtn"`
	BrandName      string `parquet:"Brnd_Name"`
	GenericName    string `parquet:"Gnrc_Name"`

	TotalClaims        float64 `parquet:"Tot_Clms"`
	TotalBeneficiaries float64 `parquet:"Tot_Benes"`
	TotalDrugCost      float64 `parquet:"Tot_Drug_Cst"`

	CostPerClaim       *float64 `parquet:"Cost_Per_Claim,optional"`
	CostPerBeneficiary *float64 `parquet:"Cost_Per_Beneficiary,optional"`
}

// MedicareColumns maps the raw CSV headers the pre-processor requires.
const (
	MedicareColNPI      = "Prscrbr_NPI"
	MedicareColName     = "Prscrbr_Last_Org_Name"
	MedicareColState    = "Prscrbr_State_Abrvtn"
	MedicareColBrand    = "Brnd_Name"
	MedicareColGeneric  = "Gnrc_Name"
	MedicareColClaims   = "Tot_Clms"
	MedicareColBenes    = "Tot_Benes"
	MedicareColDrugCost = "Tot_Drug_Cst"
)
