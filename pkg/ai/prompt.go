package ai

import (
	"fmt"
	"strings"
)

const systemPrompt = `Eres un analista experto en ventas B2B. Recibirás el transcrito de una reunión comercial y deberás evaluar al cliente usando criterios cuantitativos y cualitativos. Tu salida debe ser un JSON estricto y válido. Si no hay información suficiente en el transcrito, devuelve null o [] según corresponda.

Reglas:
- Usa las escalas y categorías definidas en el esquema.
- No inventes información no presente en el texto.
- Sé conservador al asignar probabilidades.
- Para "pains", reutiliza una categoría conocida cuando alguna describa el problema; crea una etiqueta nueva solo si ninguna aplica.`

const userPromptTemplate = `Analiza el siguiente transcrito y genera una clasificación completa.

TRANSCRITO:
"""
%s
"""

Categorías de dolor conocidas hasta ahora:
%s

Donde:
- "sentiment" va de -2 (muy negativo) a 2 (muy positivo).
- "urgency" va de 0 (sin urgencia) a 3 (urgencia crítica).
- "fit_score" evalúa cuán bien nuestro producto resuelve el problema del cliente (0 a 1).
- "close_probability" evalúa la probabilidad de cierre considerando todas las señales (0 a 1).
- "next_step_clarity" indica si quedó una acción definida (0 a 3).
- "origin" es la fuente del lead si se menciona (referido, web, evento, etc.).
- "automatization" indica si el cliente busca automatizar procesos, o null si no se menciona.
- "summary" es un resumen breve de la reunión.`

// BuildPrompt assembles the classifier prompt from a meeting transcript and
// the currently known pain-category labels. The label list is an explicit
// input: callers query it fresh so the taxonomy self-reinforces across calls
// without hidden shared state.
func BuildPrompt(transcript string, knownPains []string) string {
	pains := "(ninguna todavía)"
	if len(knownPains) > 0 {
		pains = "- " + strings.Join(knownPains, "\n- ")
	}
	return systemPrompt + "\n\n" + fmt.Sprintf(userPromptTemplate, transcript, pains)
}
