package entity

// TransactionFeatures is a decoded transaction payload keyed by field name.
// Values are kept as decoded so that numeric coercion happens in one place.
type TransactionFeatures map[string]any

// FeatureVector is an ordered numeric input for a classifier. Its order and
// length always match the classifier's feature names.
type FeatureVector []float64

// FieldSpec describes one known transaction field
type FieldSpec struct {
	Name     string
	Required bool
	Default  float64
}

// Field names
const (
	FieldTransactionAmount          = "Transaction_Amount"
	FieldAccountBalance             = "Account_Balance"
	FieldIPAddressFlag              = "IP_Address_Flag"
	FieldDailyTransactionCount      = "Daily_Transaction_Count"
	FieldAvgTransactionAmount7d     = "Avg_Transaction_Amount_7d"
	FieldFailedTransactionCount7d   = "Failed_Transaction_Count_7d"
	FieldTransactionDistance        = "Transaction_Distance"
	FieldRiskScore                  = "Risk_Score"
	FieldAmountToBalanceRatio       = "Amount_to_Balance_Ratio"
	FieldAmountDeviation            = "Amount_Deviation"
	FieldPreviousFraudulentActivity = "Previous_Fraudulent_Activity"
	FieldIsWeekend                  = "Is_Weekend"
	FieldHour                       = "Hour"
	FieldDayOfWeek                  = "DayOfWeek"
	FieldIsNight                    = "Is_Night"
	FieldHighRiskCategory           = "High_Risk_Category"
)

// TransactionSchema lists every known field: the ten required ones first, in
// the order missing fields are reported, then the optional ones with their
// defaults.
var TransactionSchema = []FieldSpec{
	{Name: FieldTransactionAmount, Required: true},
	{Name: FieldAccountBalance, Required: true},
	{Name: FieldIPAddressFlag, Required: true},
	{Name: FieldDailyTransactionCount, Required: true},
	{Name: FieldAvgTransactionAmount7d, Required: true},
	{Name: FieldFailedTransactionCount7d, Required: true},
	{Name: FieldTransactionDistance, Required: true},
	{Name: FieldRiskScore, Required: true},
	{Name: FieldAmountToBalanceRatio, Required: true},
	{Name: FieldAmountDeviation, Required: true},
	{Name: FieldPreviousFraudulentActivity, Default: 0},
	{Name: FieldIsWeekend, Default: 0},
	{Name: FieldHour, Default: 12},
	{Name: FieldDayOfWeek, Default: 3},
	{Name: FieldIsNight, Default: 0},
	{Name: FieldHighRiskCategory, Default: 0},
}

// RequiredFields returns the names of the mandatory fields in schema order
func RequiredFields() []string {
	names := make([]string, 0, len(TransactionSchema))
	for _, f := range TransactionSchema {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// FieldNames returns all known field names in schema order
func FieldNames() []string {
	names := make([]string, len(TransactionSchema))
	for i, f := range TransactionSchema {
		names[i] = f.Name
	}
	return names
}

// MissingRequired returns the required fields absent from f, in schema order
func (f TransactionFeatures) MissingRequired() []string {
	var missing []string
	for _, field := range TransactionSchema {
		if !field.Required {
			continue
		}
		if _, ok := f[field.Name]; !ok {
			missing = append(missing, field.Name)
		}
	}
	return missing
}

// WithDefaults returns a copy of f where every absent optional field holds
// its default. Present values are never overwritten.
func (f TransactionFeatures) WithDefaults() TransactionFeatures {
	out := make(TransactionFeatures, len(f)+len(TransactionSchema))
	for k, v := range f {
		out[k] = v
	}
	for _, field := range TransactionSchema {
		if field.Required {
			continue
		}
		if _, ok := out[field.Name]; !ok {
			out[field.Name] = field.Default
		}
	}
	return out
}
