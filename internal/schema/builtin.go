package schema

const (
	WellnessSurvey     = "wellness-survey"
	ImmunizationImport = "immunization-import"

	// DefaultDurationColumn is the response-time column of survey platform exports.
	DefaultDurationColumn = "Duration__in_seconds_"
)

// surveyMetaColumns are the response metadata columns every survey export starts with.
var surveyMetaColumns = []string{
	"StartDate", "EndDate", "Status", "Progress", DefaultDurationColumn, "Finished",
	"RecordedDate", "DistributionChannel", "UserLanguage",
}

var wellnessSurveyColumns = append(append([]string(nil), surveyMetaColumns...),
	"cantril1", "cantril2", "financial_cantril", "promis1", "promis2", "promis3",
	"K6_1", "K6_2", "K6_3", "K6_4", "K6_5", "K6_6", "mh_tx_v2",
	"loneliness1", "loneliness2", "loneliness3", "belonging_3",
	"diener1", "diener2", "diener3", "diener4", "diener5", "diener6", "diener7", "diener8",
	"expectancy1", "expectancy2", "binge",
	"campus1", "campus2", "campus3", "campus4", "campus5",
	"discrimination1", "discrimination2_2", "discrimination2_10", "discrimination2_1",
	"discrimination2_3", "discrimination2_4", "discrimination2_5", "discrimination2_6",
	"discrimination2_7", "discrimination2_8", "discrimination2_9", "discrimination2_9_TEXT",
	"discrimination3",
	"dem1", "dem2", "dem3", "dem4", "dem5_1", "dem6", "dem7", "dem8", "dem9",
	"dem10_1", "dem10_2", "dem10_3", "dem10_4", "dem10_5", "dem10_6", "dem10_7", "dem10_8",
	"dem10_9", "dem10_9_TEXT", "dem11",
	"Q145", "Q140", "Q147", "Q148",
	"promis1_recode", "promis2_recode", "promis3_recode",
	"k6_sum", "diener_sum", "cantril_categorical2", "loneliness_sum",
	"expectancy_value_mean_respondent", "expectancy_value_mean_total", "expectancy_value_stdev",
	"expectancy_value_cut", "expectancy_value_categorical",
	"promis_composite", "k6_categorical", "mh_tx_categorical", "cantril_categorical",
	"loneliness_categorical", "diener_categorical", "belonging_single_item_categorical",
	"binge_frequent", "binge_any", "health_academic_risk",
	"campus1_friend_categorical", "campus2_learning_categorical",
	"campus3_extracurricular_categorical", "campus4_mentor_categorical",
	"campus5_cares_categorical", "discrimination_any",
	"rdem_gender", "rdem_first_gen", "rdem_international", "rdem_degree",
)

var immunizationImportColumns = append(append([]string(nil), surveyMetaColumns...),
	"PatientID", "DateOfBirth", "Sex", "VaccineCode", "VaccineName", "Manufacturer",
	"LotNumber", "DoseNumber", "AdministrationDate", "AdministrationSite", "Route",
	"ProviderID", "FacilityID",
)

var surveyTimestamps = map[string]Type{
	"StartDate":    TypeTimestamp,
	"EndDate":      TypeTimestamp,
	"RecordedDate": TypeTimestamp,
}

func withTypes(base map[string]Type, extra map[string]Type) map[string]Type {
	out := make(map[string]Type, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Builtins returns the descriptors that ship with the tool.
func Builtins() []Descriptor {
	return []Descriptor{
		{
			Name:           WellnessSurvey,
			Description:    "Student wellness survey export",
			Required:       append([]string(nil), wellnessSurveyColumns...),
			Types:          withTypes(surveyTimestamps, nil),
			DurationColumn: DefaultDurationColumn,
		},
		{
			Name:        ImmunizationImport,
			Description: "Immunization record import",
			Required:    append([]string(nil), immunizationImportColumns...),
			Types: withTypes(surveyTimestamps, map[string]Type{
				"DateOfBirth":        TypeTimestamp,
				"AdministrationDate": TypeTimestamp,
				"DoseNumber":         TypeInteger,
			}),
			DurationColumn: DefaultDurationColumn,
		},
	}
}

// BuiltinCatalog returns a catalog holding Builtins.
func BuiltinCatalog() *Catalog {
	c, err := NewCatalog(Builtins()...)
	if err != nil {
		panic("schema: invalid builtin descriptor: " + err.Error())
	}
	return c
}
