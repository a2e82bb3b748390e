package llm

import "context"

// MockGenerator is a canned-output Generator for tests and local runs
// without provider credentials.
type MockGenerator struct {
	ChatOut   *ChatOutput
	HealthOut *HealthOutput
	PathOut   *LearningPathOutput
	Err       error

	ChatCalls   int
	HealthCalls int
	PathCalls   int
}

func (m *MockGenerator) Chat(_ context.Context, _ ChatInput) (*ChatOutput, error) {
	m.ChatCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ChatOut, nil
}

func (m *MockGenerator) HealthRecommendations(_ context.Context, _ HealthInput) (*HealthOutput, error) {
	m.HealthCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.HealthOut, nil
}

func (m *MockGenerator) LearningPath(_ context.Context, _ LearningPathInput) (*LearningPathOutput, error) {
	m.PathCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PathOut, nil
}

// SampleLearningPath returns a small schema-valid path: two modules with one
// and two lessons respectively.
func SampleLearningPath() *LearningPathOutput {
	lesson := func(title string) GeneratedLesson {
		return GeneratedLesson{
			Title:           title,
			DetailedContent: "El ahorro constante es la base de cualquier plan financiero.",
			PracticalTips:   []string{"Separa el ahorro apenas recibas tu ingreso", "Empieza con el 10%"},
			RealExample:     "Ana aparta 50 USD cada quincena en una cuenta separada.",
			Quiz: []GeneratedQuizQuestion{
				{
					Question:      "¿Cuándo conviene separar el ahorro?",
					Options:       []string{"Al recibir el ingreso", "Al final del mes"},
					CorrectAnswer: "Al recibir el ingreso",
				},
			},
		}
	}

	return &LearningPathOutput{
		Modules: []GeneratedModule{
			{Title: "Fundamentos del ahorro", Lessons: []GeneratedLesson{lesson("Por qué ahorrar")}},
			{Title: "Presupuesto personal", Lessons: []GeneratedLesson{lesson("Armar un presupuesto"), lesson("Controlar gastos hormiga")}},
		},
	}
}
