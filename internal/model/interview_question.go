package model

type InterviewQuestion struct {
	BaseModel
	Department string `gorm:"size:50;not null;index" json:"department"`
	Question   string `gorm:"type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
}

// DepartmentLabels maps department slugs to their display names.
var DepartmentLabels = map[string]string{
	"civil_engineering":                 "Civil Engineering",
	"mechanical_engineering":            "Mechanical Engineering",
	"eee":                               "Electrical & Electronics Engineering (EEE)",
	"ece":                               "Electronics & Communication (ECE)",
	"cse_it":                            "Computer Science & IT",
	"chemical_engineering":              "Chemical Engineering",
	"aerospace_engineering":             "Aerospace Engineering",
	"biomedical_engineering":            "Biomedical Engineering",
	"industrial_engineering":            "Industrial Engineering",
	"physics":                           "Physics",
	"chemistry":                         "Chemistry",
	"mathematics_statistics":            "Mathematics / Statistics",
	"botany":                            "Botany",
	"zoology":                           "Zoology",
	"biotechnology_microbiology":        "Biotechnology / Microbiology",
	"environmental_science_ecology":     "Environmental Science / Ecology",
	"geology_geography":                 "Geology / Geography",
	"mbbs":                              "MBBS",
	"bds":                               "BDS",
	"nursing":                           "Nursing",
	"pharmacy":                          "Pharmacy",
	"physiotherapy":                     "Physiotherapy",
	"public_health":                     "Public Health",
	"history":                           "History",
	"political_science":                 "Political Science",
	"sociology_social_work":             "Sociology / Social Work",
	"psychology":                        "Psychology",
	"philosophy_ethics":                 "Philosophy / Ethics",
	"languages":                         "Languages",
	"fine_arts_performing_arts":         "Fine Arts / Performing Arts",
	"commerce_accounting":               "Commerce / Accounting",
	"business_admin_management":         "Business Admin / Management",
	"llb_llm":                           "LLB / LLM",
	"education":                         "Education",
	"library_information_science":       "Library & Information Science",
	"hotel_management":                  "Hotel Management",
	"agriculture_horticulture_forestry": "Agriculture / Horticulture / Forestry",
	"veterinary":                        "Veterinary",
	"economy":                           "Economy",
}

// DepartmentLabel resolves a slug to its display name, falling back to the
// slug itself for unknown values.
func DepartmentLabel(slug string) string {
	if label, ok := DepartmentLabels[slug]; ok {
		return label
	}
	return slug
}
