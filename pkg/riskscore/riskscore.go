// Package riskscore estimates heart-disease risk from a fixed ten-feature
// profile and derives personalized guidance. Scoring is a transparent
// weighted rule set; it holds no state and is safe for concurrent use.
package riskscore

// Input is the fixed feature vector. Binary factors are 0 or 1; Gender is
// 0 female, 1 male. Field names follow the assessment form the frontend
// submits.
type Input struct {
	Age              float64 `json:"Age"`
	Gender           int     `json:"Gender"`
	HighBP           int     `json:"High_BP"`
	HighCholesterol  int     `json:"High_Cholesterol"`
	Smoking          int     `json:"Smoking"`
	FamilyHistory    int     `json:"Family_History"`
	ChronicStress    int     `json:"Chronic_Stress"`
	ShortnessBreath  int     `json:"Shortness_of_Breath"`
	PainArmsJawBack  int     `json:"Pain_Arms_Jaw_Back"`
	ColdSweatsNausea int     `json:"Cold_Sweats_Nausea"`
}

type TipCategory struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

type Assessment struct {
	RiskLevel        string        `json:"risk_level"`
	Advice           string        `json:"advice"`
	Probability      float64       `json:"probability"`
	UrgentWarning    string        `json:"urgent_warning"`
	PersonalizedTips []TipCategory `json:"personalized_tips"`
	GeneralTips      []string      `json:"general_tips"`
}

const (
	LevelLow    = "Low Risk"
	LevelMedium = "Medium Risk"
	LevelHigh   = "High Risk"
)

// probability combines age bands and weighted risk factors into a 0..0.99
// score calibrated against the same thresholds as the original assessment
// (<0.20 low, <0.50 medium).
func probability(in Input) float64 {
	p := 0.02
	switch {
	case in.Age >= 60:
		p += 0.22
	case in.Age >= 45:
		p += 0.12
	case in.Age >= 30:
		p += 0.05
	}
	if in.Gender == 1 {
		p += 0.03
	}
	factors := []struct {
		set    int
		weight float64
	}{
		{in.HighBP, 0.12},
		{in.HighCholesterol, 0.12},
		{in.Smoking, 0.15},
		{in.FamilyHistory, 0.10},
		{in.ChronicStress, 0.08},
		{in.ShortnessBreath, 0.10},
		{in.PainArmsJawBack, 0.12},
		{in.ColdSweatsNausea, 0.10},
	}
	for _, f := range factors {
		if f.set == 1 {
			p += f.weight
		}
	}
	if p > 0.99 {
		p = 0.99
	}
	return p
}

// Assess scores the profile and attaches guidance. Acute symptoms on a
// medium or high risk profile short-circuit to an urgent warning with no
// lifestyle tips.
func Assess(in Input) Assessment {
	p := probability(in)

	var level, advice string
	switch {
	case p < 0.20:
		level = LevelLow
		advice = "Your overall risk profile is low. Great job! Review your personalized tips for maintenance."
	case p < 0.50:
		level = LevelMedium
		advice = "Your overall risk profile is medium. This indicates some risk factors should be addressed. We recommend reviewing your tips and scheduling a professional assessment with your doctor."
	default:
		level = LevelHigh
		advice = "Your overall risk profile is high. Please seek immediate medical advice or consult a doctor."
	}

	out := Assessment{
		RiskLevel:        level,
		Advice:           advice,
		Probability:      p,
		PersonalizedTips: []TipCategory{},
		GeneralTips:      []string{},
	}

	acute := in.ShortnessBreath == 1 || in.PainArmsJawBack == 1 || in.ColdSweatsNausea == 1
	if acute {
		switch level {
		case LevelHigh:
			out.UrgentWarning = "URGENT: Symptoms reported with a High Risk profile need immediate medical assessment. Contact a doctor now."
			return out
		case LevelMedium:
			out.UrgentWarning = "RECOMMENDED: Symptoms reported need a medical assessment. Please contact a doctor as soon as possible to review your profile."
			return out
		}
	}

	if in.Smoking == 1 {
		out.PersonalizedTips = append(out.PersonalizedTips, TipCategory{
			Title: "QUIT SMOKING",
			Points: []string{
				"1. Drink more water to flush toxins.",
				"2. Add vitamin C daily to support your lungs.",
			},
		})
	}
	if in.HighBP == 1 {
		out.PersonalizedTips = append(out.PersonalizedTips, TipCategory{
			Title: "BLOOD PRESSURE MANAGEMENT",
			Points: []string{
				"1. Cut down salt to help lower pressure.",
				"2. Check your BP regularly to stay on track.",
			},
		})
	}
	if in.HighCholesterol == 1 {
		out.PersonalizedTips = append(out.PersonalizedTips, TipCategory{
			Title: "CHOLESTEROL MANAGEMENT",
			Points: []string{
				"1. Eat more fiber (oats, fruits) to reduce bad fats.",
				"2. Avoid fried foods to keep levels stable.",
			},
		})
	}
	if in.ChronicStress == 1 {
		out.PersonalizedTips = append(out.PersonalizedTips, TipCategory{
			Title: "MENTAL HEALTH",
			Points: []string{
				"1. Dedicate time daily for relaxation, mindfulness, or deep breathing.",
				"2. Ensure you get 7-9 hours of quality sleep daily.",
			},
		})
	}
	if in.FamilyHistory == 1 {
		out.PersonalizedTips = append(out.PersonalizedTips, TipCategory{
			Title: "FAMILY HISTORY",
			Points: []string{
				"1. Get routine checkups to catch issues early.",
				"2. Maintain a healthy weight to reduce risk.",
			},
		})
	}

	if len(out.PersonalizedTips) == 0 {
		if level == LevelLow {
			out.GeneralTips = append(out.GeneralTips,
				"Maintain your healthy profile by aiming for at least 150 minutes of weekly activity.",
				"Continue eating a balanced diet low in processed foods and added sugars.",
			)
		} else {
			out.GeneralTips = append(out.GeneralTips,
				"Schedule a full check-up with a healthcare provider to identify unseen risk factors.",
				"Aim for at least 30 minutes of moderate activity (like brisk walking) most days of the week.",
			)
		}
	} else {
		out.GeneralTips = append(out.GeneralTips,
			"Walk 30 minutes daily or aim for 150 minutes of moderate activity per week.")
	}

	return out
}
