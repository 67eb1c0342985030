package assist

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/models"
)

func thoughtRecordPrompt(situation, thought, emotion string) string {
	return fmt.Sprintf(`You are an expert CBT therapist. A user has provided a thought record.
Analyze the following:
Situation: %s
Automatic Thought: %s
Emotion: %s

Your task:
1. Identify the primary cognitive distortion (e.g., Catastrophizing, All-or-nothing thinking, Mind reading).
2. Suggest a more balanced, evidence-based alternative thought.

Respond in JSON format with keys: "distortion" and "alternativeThought".`, situation, thought, emotion)
}

func evidencePrompt(thought string) string {
	return fmt.Sprintf(`The user has this anxious thought: "%s".
Act as a CBT therapist guiding them through the "Check" phase (evaluating evidence).

Provide 3 bullet points of "Evidence Against" this thought.
Challenge logical fallacies politely and suggest objective facts they might be missing.
Keep it brief and conversational.`, thought)
}

func medicationInfoPrompt(name string) string {
	return fmt.Sprintf(`Provide a brief, non-medical summary for the medication "%s" in the context of treating Generalized Anxiety Disorder (GAD) or anxiety.
Include:
1. What class of drug it is.
2. Common side effects.
3. A strict disclaimer that this is not medical advice.
Keep it under 150 words.`, name)
}

func interactionsPrompt(newMed string, existing []string) string {
	return fmt.Sprintf(`The user is currently taking: %s.
They are planning to add: %s.

Check for any known major drug interactions between these medications.

Respond with:
- "No major interactions found" if safe.
- A short warning if there are interactions.
- Always include: "Consult a doctor/pharmacist for verification."

Keep it brief (max 3 sentences).`, strings.Join(existing, ", "), newMed)
}

func copingPrompt(anxiety int, symptoms []string, notes string) string {
	symptomText := "None specified"
	if len(symptoms) > 0 {
		symptomText = strings.Join(symptoms, ", ")
	}
	if notes == "" {
		notes = "None"
	}
	return fmt.Sprintf(`The user has reported a high anxiety score of %d/10.
Reported Symptoms: %s.
User Notes: "%s".

Provide a single, specific, evidence-based coping strategy (CBT or physiological) relevant to this state.
- If they mention physical symptoms (e.g. racing heart, muscle tension), suggest a physiological tool (e.g. Box Breathing, PMR).
- If they mention worry/thoughts, suggest a cognitive tool (e.g. 3Cs, Worry Postponement).

Keep it under 3 sentences. Be warm, directive, and supportive.`, anxiety, symptomText, notes)
}

func progressReportPrompt(stats analytics.ReportStats) string {
	gad7 := "Not taken"
	if stats.LatestGAD7 != nil && *stats.LatestGAD7 != 0 {
		gad7 = fmt.Sprint(*stats.LatestGAD7)
	}
	return fmt.Sprintf(`Generate a professional, empathetic weekly progress summary for a user managing Generalized Anxiety Disorder.

Data:
- Average Anxiety Level (last 7 days): %s/10
- Average Sleep: %s hours
- CBT Exercises Completed: %d
- Medication Compliance: %s%%
- Latest GAD-7 Score: %s

The report should:
1. Highlight positive trends or efforts (e.g., consistency in logging, doing CBT).
2. Gently point out areas for attention (e.g., sleep hygiene if sleep is low).
3. Maintain a clinical but encouraging tone.
4. Be formatted in Markdown.
5. Keep it concise (under 200 words).`, stats.AvgAnxiety, stats.AvgSleep, stats.CBTCount, stats.MedCompliance, gad7)
}

func workoutPrompt(level string, equipment []string, daysPerWeek int) string {
	equip := "Bodyweight only"
	if len(equipment) > 0 {
		equip = strings.Join(equipment, ", ")
	}
	return fmt.Sprintf(`Create a resistance training schedule for someone with anxiety.
Fitness Level: %s
Equipment: %s
Weekly Goal: %d days per week.

Return a JSON array of workout objects.
Each object must have:
- title (e.g., "Full Body A")
- dayOfWeek (integer 0-6, distribute them logically for recovery)
- exercises (array of objects with: name, sets (integer), reps (string))

The exercises should be simple, effective, and require the specified equipment.
Focus on "feeling strong" and "mind-body connection".`, level, equip, daysPerWeek)
}

func insightsPrompt(summary string) string {
	return fmt.Sprintf(`Analyze this user health data summary and provide 3 short, specific, data-driven insights about correlations.

Data Summary:
%s

Return a JSON array of objects.
Each object must have:
- text: string (The insight text, e.g. "When you sleep >7h, anxiety drops")
- relatedMetrics: array of strings (The specific metrics involved, exactly matching these keys: 'Sleep', 'Exercise', 'Social', 'Anxiety', 'Mood')

Example:
[
  { "text": "Days with >30min exercise show 20%% lower anxiety.", "relatedMetrics": ["Exercise", "Anxiety"] }
]`, summary)
}

func chatPrompt(message string, history []models.ChatMessage) string {
	lines := make([]string, 0, len(history))
	for _, h := range history {
		speaker := "Assistant"
		if h.Role == models.RoleUser {
			speaker = "User"
		}
		lines = append(lines, speaker+": "+h.Content)
	}
	return fmt.Sprintf(`You are a compassionate, evidence-based CBT assistant named "MindCalm AI".
Your goal is to support users with Generalized Anxiety Disorder (GAD).

Capabilities:
1. Explain CBT concepts (3Cs, Cognitive Distortions, Exposure).
2. Answer questions about anxiety symptoms and mechanisms.
3. Offer supportive, non-judgmental encouragement.

Constraints:
- You are NOT a doctor or licensed therapist. Do not give medical diagnoses or medication advice.
- If a user asks about meds, refer them to the Medication Hub or a doctor.
- Keep responses concise (under 3-4 sentences usually) unless explaining a complex technique.
- Use a warm, professional tone.

Conversation History:
%s

User: %s
Assistant:`, strings.Join(lines, "\n"), message)
}

var thoughtSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"distortion":         {Type: genai.TypeString},
		"alternativeThought": {Type: genai.TypeString},
	},
	Required: []string{"distortion", "alternativeThought"},
}

var workoutSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":     {Type: genai.TypeString},
			"dayOfWeek": {Type: genai.TypeInteger},
			"exercises": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {Type: genai.TypeString},
						"sets": {Type: genai.TypeInteger},
						"reps": {Type: genai.TypeString},
					},
				},
			},
		},
	},
}

var insightSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":           {Type: genai.TypeString},
			"relatedMetrics": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"text", "relatedMetrics"},
	},
}
