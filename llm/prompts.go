package llm

import (
	"fmt"
	"strings"
)

const chatSystemPrompt = `Eres "Tutor Financiero IA", un asistente conversacional educativo que enseña finanzas personales. Tu lenguaje debe ser claro, empático y adaptado a personas con bajo nivel de conocimiento financiero.

Tu tono debe ser:
- Claro, sin términos técnicos complicados.
- Amigable y cercano (como un profesor o coach).
- Motivador pero realista.
- Adaptable según la emoción del usuario (detecta frustración, desánimo o interés).

Objetivos:
- Educar sobre conceptos de finanzas personales a través de conversación natural.
- Adaptar el contenido al nivel y la situación económica del usuario.
- Resolver dudas con ejemplos claros y relevantes.
- Guiar paso a paso en la creación de metas financieras y la mejora del presupuesto.

Responde únicamente con un objeto JSON con esta forma exacta:
{"answer": "<tu respuesta>"}`

const healthSystemPrompt = `Eres un asesor de finanzas personales. Analiza la situación financiera del usuario y entrega recomendaciones personalizadas, específicas y accionables para mejorar su salud financiera.

Responde únicamente con un objeto JSON con esta forma exacta:
{"recommendations": "<tus recomendaciones>"}`

const learningPathSystemPrompt = `Eres un tutor experto en educación financiera. Crea una ruta de aprendizaje personalizada según el contexto, las metas y el nivel de conocimiento del usuario.

Responde únicamente con un objeto JSON con esta forma exacta:
{"modules": [{"title": "...", "lessons": [{"title": "...", "detailedContent": "...", "practicalTips": ["...", "..."], "realExample": "...", "quiz": [{"question": "...", "options": ["...", "..."], "correctAnswer": "..."}]}]}]}

Reglas de contenido:
- Cada lección lleva entre 2 y 3 tips prácticos cortos.
- Cada lección lleva 1 o 2 preguntas de quiz, cada una con al menos 2 opciones.
- correctAnswer debe ser exactamente una de las opciones de su pregunta.
- detailedContent explica el tema en profundidad; realExample es un caso cotidiano.`

// Fixed editorial policy: the knowledge level steers topical emphasis only.
var levelEmphasis = map[string]string{
	LevelPrincipiante: "ahorro, presupuesto, manejo de deudas e interés básico",
	LevelIntermedio:   "tarjetas de crédito, control de gastos y definición de metas",
	LevelAvanzado:     "interés compuesto y fundamentos de inversión",
}

func chatUserPrompt(in ChatInput) string {
	var b strings.Builder
	if len(in.History) > 0 {
		b.WriteString("Historial de la conversación:\n")
		for _, msg := range in.History {
			fmt.Fprintf(&b, "- %s: %s\n", msg.Role, msg.Content)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Nueva pregunta del usuario: %s\n\nResponde a la nueva pregunta según tu rol y el historial.", in.Query)
	return b.String()
}

func chatMessages(in ChatInput) []message {
	return []message{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: chatUserPrompt(in)},
	}
}

func healthMessages(in HealthInput) []message {
	prompt := fmt.Sprintf(`Situación financiera del usuario:
- Ingreso mensual: %.2f USD
- Gastos mensuales: %.2f USD
- Deuda total: %.2f USD
- Ahorros totales: %.2f USD
- Metas: %s

Entrega recomendaciones específicas y accionables para mejorar su salud financiera.`,
		in.Income, in.Expenses, in.Debt, in.Savings, in.Goals)

	return []message{
		{Role: "system", Content: healthSystemPrompt},
		{Role: "user", Content: prompt},
	}
}

func learningPathMessages(in LearningPathInput) []message {
	prompt := fmt.Sprintf(`Contexto financiero: %s
Metas financieras: %s
Nivel de conocimiento: %s

Pon énfasis en: %s.

Crea la ruta de aprendizaje completa.`,
		in.FinancialBackground, in.FinancialGoals, in.Level, levelEmphasis[in.Level])

	return []message{
		{Role: "system", Content: learningPathSystemPrompt},
		{Role: "user", Content: prompt},
	}
}

// PathName builds the display name for a generated path, mirroring what the
// learner sees on the path screen.
func PathName(in LearningPathInput) string {
	return fmt.Sprintf("Ruta de aprendizaje para %s", in.Level)
}

// PathDescription summarizes the goals the path was generated from.
func PathDescription(in LearningPathInput) string {
	return fmt.Sprintf("Metas: %s", in.FinancialGoals)
}
