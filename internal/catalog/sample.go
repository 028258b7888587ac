package catalog

import "study-quiz-service/internal/domain"

// Sample is the built-in catalog served when no database or seed file is configured.
func Sample() map[string]domain.Quiz {
	quizzes := []domain.Quiz{
		{
			ID:               "algebra-basics",
			Title:            "Algebra Basics",
			Description:      "Linear equations and order of operations.",
			Subject:          "Mathematics",
			TimeLimitMinutes: 15,
			PassingScore:     70,
			Questions: []domain.Question{
				{
					ID:            "alg-1",
					Type:          domain.Numerical,
					Prompt:        "Solve for x: 2x + 6 = 14",
					CorrectAnswer: domain.NumberAnswer(4),
					Explanation:   "Subtract 6 from both sides, then divide by 2.",
					Steps:         []string{"2x + 6 = 14", "2x = 8", "x = 4"},
					Difficulty:    domain.Easy,
					Category:      "Linear equations",
					Points:        5,
				},
				{
					ID:            "alg-2",
					Type:          domain.MultipleChoice,
					Prompt:        "What is 3 + 4 × 2?",
					Options:       []string{"14", "11", "10", "24"},
					CorrectAnswer: domain.TextAnswer("11"),
					Explanation:   "Multiplication is evaluated before addition.",
					Difficulty:    domain.Easy,
					Category:      "Order of operations",
					Points:        5,
				},
				{
					ID:            "alg-3",
					Type:          domain.TrueFalse,
					Prompt:        "The equation x² = -1 has a real solution.",
					Options:       []string{"true", "false"},
					CorrectAnswer: domain.TextAnswer("false"),
					Explanation:   "Squares of real numbers are never negative.",
					Difficulty:    domain.Medium,
					Category:      "Quadratics",
					Points:        5,
				},
				{
					ID:            "alg-4",
					Type:          domain.Numerical,
					Prompt:        "Evaluate 1/3 to three decimal places.",
					CorrectAnswer: domain.NumberAnswer(0.333),
					Explanation:   "1 ÷ 3 = 0.3333…",
					Difficulty:    domain.Medium,
					Category:      "Fractions",
					Points:        10,
				},
			},
		},
		{
			ID:           "cell-biology",
			Title:        "Cell Biology",
			Description:  "Organelles and their functions.",
			Subject:      "Biology",
			PassingScore: 60,
			Questions: []domain.Question{
				{
					ID:            "bio-1",
					Type:          domain.Text,
					Prompt:        "Which organelle is known as the powerhouse of the cell?",
					CorrectAnswer: domain.TextAnswer("mitochondria"),
					Explanation:   "Mitochondria produce most of the cell's ATP.",
					Difficulty:    domain.Easy,
					Category:      "Organelles",
					Points:        2,
				},
				{
					ID:            "bio-2",
					Type:          domain.MultipleChoice,
					Prompt:        "Where does photosynthesis take place?",
					Options:       []string{"Nucleus", "Chloroplast", "Ribosome", "Golgi apparatus"},
					CorrectAnswer: domain.TextAnswer("Chloroplast"),
					Difficulty:    domain.Easy,
					Category:      "Organelles",
					Points:        2,
				},
				{
					ID:            "bio-3",
					Type:          domain.TrueFalse,
					Prompt:        "Prokaryotic cells have a membrane-bound nucleus.",
					Options:       []string{"true", "false"},
					CorrectAnswer: domain.TextAnswer("false"),
					Difficulty:    domain.Medium,
					Category:      "Cell types",
					Points:        3,
				},
			},
		},
		{
			ID:                  "kinematics-practice",
			Title:               "Kinematics Practice",
			Description:         "A different set of motion problems on every attempt.",
			Subject:             "Physics",
			TimeLimitMinutes:    20,
			PassingScore:        65,
			QuestionsPerAttempt: 3,
			QuestionPool: []domain.Question{
				{
					ID:            "kin-1",
					Type:          domain.Numerical,
					Prompt:        "A car travels 150 m in 10 s at constant speed. Speed in m/s?",
					CorrectAnswer: domain.NumberAnswer(15),
					Steps:         []string{"v = d / t", "v = 150 / 10", "v = 15 m/s"},
					Difficulty:    domain.Easy,
					Category:      "Velocity",
					Points:        5,
				},
				{
					ID:            "kin-2",
					Type:          domain.Numerical,
					Prompt:        "An object accelerates from rest at 2 m/s² for 5 s. Final speed in m/s?",
					CorrectAnswer: domain.NumberAnswer(10),
					Steps:         []string{"v = u + at", "v = 0 + 2 × 5", "v = 10 m/s"},
					Difficulty:    domain.Medium,
					Category:      "Acceleration",
					Points:        5,
				},
				{
					ID:            "kin-3",
					Type:          domain.Numerical,
					Prompt:        "Distance covered from rest at 4 m/s² after 3 s, in m?",
					CorrectAnswer: domain.NumberAnswer(18),
					Steps:         []string{"s = ut + ½at²", "s = 0 + ½ × 4 × 9", "s = 18 m"},
					Difficulty:    domain.Medium,
					Category:      "Displacement",
					Points:        5,
				},
				{
					ID:            "kin-4",
					Type:          domain.Numerical,
					Prompt:        "Time for a ball dropped from 19.6 m to hit the ground (g = 9.8 m/s²), in s?",
					CorrectAnswer: domain.NumberAnswer(2),
					Steps:         []string{"h = ½gt²", "t² = 2h / g = 4", "t = 2 s"},
					Difficulty:    domain.Hard,
					Category:      "Free fall",
					Points:        10,
				},
				{
					ID:            "kin-5",
					Type:          domain.TrueFalse,
					Prompt:        "An object moving at constant velocity has zero acceleration.",
					Options:       []string{"true", "false"},
					CorrectAnswer: domain.TextAnswer("true"),
					Difficulty:    domain.Easy,
					Category:      "Acceleration",
					Points:        5,
				},
			},
		},
	}

	out := make(map[string]domain.Quiz, len(quizzes))
	for _, q := range quizzes {
		out[q.ID] = q
	}
	return out
}
