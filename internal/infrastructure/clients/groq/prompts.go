package groq

import (
	"fmt"
	"strings"
)

// Supported report languages.
const (
	LanguageEnglish = "english"
	LanguageHindi   = "hindi"
)

// NormalizeLanguage maps arbitrary input to a supported language, defaulting
// to English.
func NormalizeLanguage(language string) string {
	if strings.EqualFold(language, LanguageHindi) {
		return LanguageHindi
	}
	return LanguageEnglish
}

var systemPrompts = map[string]string{
	LanguageEnglish: "You are a clinical assistant writing for patients with no medical background. " +
		"Clearly explain the findings in simple, everyday language (use analogies). " +
		"Summarize what this means for health, avoiding jargon. " +
		"Provide next steps in a step-by-step format. " +
		"End with a brief, reassuring note. " +
		"Organize output by sections: Overview, Explanation, Actions, Outcomes. " +
		"Use friendly, empathetic tone, bullet points, and clear headlines.",
	LanguageHindi: "You are a medical assistant writing reports for Hindi-speaking patients in India. " +
		"CRITICAL INSTRUCTION: You MUST write your ENTIRE response in Hindi language only. Every single word must be in Hindi (हिंदी) using Devanagari script (देवनागरी). " +
		"DO NOT write even a single word in English. NO ENGLISH WORDS ALLOWED. " +
		"Example of correct format:\n" +
		"**अवलोकन:** आपकी MRI रिपोर्ट में...\n" +
		"**स्पष्टीकरण:** यह स्थिति एक ऐसी बीमारी है जो...\n\n" +
		"Now write the medical report:\n" +
		"- Use simple, everyday Hindi language that patients can understand\n" +
		"- Explain medical conditions using analogies in Hindi\n" +
		"- Organize in sections: अवलोकन, स्पष्टीकरण, कार्यवाही, परिणाम\n" +
		"- Use bullet points and clear Hindi headings\n" +
		"- Be empathetic and reassuring in your tone\n" +
		"- Avoid complex medical jargon\n" +
		"महत्वपूर्ण: आपकी पूरी प्रतिक्रिया केवल हिंदी में होनी चाहिए। एक भी अंग्रेजी शब्द का उपयोग न करें।",
}

// SystemPrompt returns the persona and formatting instructions for the model.
func SystemPrompt(language string) string {
	if prompt, ok := systemPrompts[NormalizeLanguage(language)]; ok {
		return prompt
	}
	return systemPrompts[LanguageEnglish]
}

var skipFallbackMessages = map[string]string{
	LanguageEnglish: "LLM skipped (no API key configured). Fallback patient-friendly recommendations:\n\n" +
		"Overview: This is an AI-generated medical report based on your imaging results.\n\n" +
		"Explanation: The main finding should be explained to you by your doctor in clear language. Ask for details until you feel confident you understand what it means.\n\n" +
		"What to do next:\n" +
		"- Schedule an appointment with a relevant medical specialist\n" +
		"- Ask your doctor to explain all test results simply\n" +
		"- Follow up promptly\n\n" +
		"Outcomes: With timely care and support, many patients do well. Do not panic, but act quickly.",
	LanguageHindi: "LLM छोड़ दिया गया (कोई API कुंजी कॉन्फ़िगर नहीं की गई)। फॉलबैक रोगी-अनुकूल सिफारिशें:\n\n" +
		"अवलोकन: यह आपके इमेजिंग परिणामों के आधार पर एक AI-जनित चिकित्सा रिपोर्ट है।\n\n" +
		"स्पष्टीकरण: मुख्य निष्कर्ष आपके डॉक्टर द्वारा स्पष्ट भाषा में समझाया जाना चाहिए। जब तक आप आत्मविश्वास महसूस न करें, तब तक विवरण के लिए पूछें।\n\n" +
		"आगे क्या करें:\n" +
		"- एक प्रासंगिक चिकित्सा विशेषज्ञ के साथ अपॉइंटमेंट शेड्यूल करें\n" +
		"- अपने डॉक्टर से सभी परीक्षण परिणामों को सरलता से समझाने के लिए कहें\n" +
		"- तुरंत फॉलो अप करें\n\n" +
		"परिणाम: समय पर देखभाल और समर्थन के साथ, कई रोगी अच्छा करते हैं। घबराएं नहीं, लेकिन जल्दी से कार्य करें।",
}

// SkipFallbackMessage is the narrative returned when no API key is
// configured and the model is skipped entirely.
func SkipFallbackMessage(language string) string {
	if msg, ok := skipFallbackMessages[NormalizeLanguage(language)]; ok {
		return msg
	}
	return skipFallbackMessages[LanguageEnglish]
}

var errorFallbackTexts = map[string]string{
	LanguageEnglish: "LLM fallback: Patient-friendly recommendations unavailable. Consult your doctor for explanations and next steps in clear language.",
	LanguageHindi:   "LLM फॉलबैक: रोगी-अनुकूल सिफारिशें उपलब्ध नहीं हैं। स्पष्ट भाषा में स्पष्टीकरण और अगले कदमों के लिए अपने डॉक्टर से परामर्श करें।",
}

// ErrorFallbackText is the short narrative substituted when a model call
// fails outright.
func ErrorFallbackText(language string) string {
	if msg, ok := errorFallbackTexts[NormalizeLanguage(language)]; ok {
		return msg
	}
	return errorFallbackTexts[LanguageEnglish]
}

// BuildUserPrompt constructs the language-specific user prompt embedding the
// predicted condition, confidence, severity tier and free-text notes.
func BuildUserPrompt(language, condition string, confidence float64, severityLevel, notes string) string {
	if NormalizeLanguage(language) == LanguageHindi {
		notesSection := ""
		if notes != "" {
			notesSection = fmt.Sprintf("अतिरिक्त टिप्पणी: %s\n", notes)
		}
		return fmt.Sprintf(`
⚠️ महत्वपूर्ण निर्देश: केवल हिंदी में जवाब दें। एक भी अंग्रेजी शब्द का उपयोग न करें।
⚠️ CRITICAL: Write ONLY in Hindi. NO English words at all.

कृपया निम्नलिखित चिकित्सा रिपोर्ट पूरी तरह से हिंदी में लिखें:

**रोगी की जानकारी:**
- MRI स्कैन का परिणाम मिला है
- निदान: %s
- निश्चितता: %g%%
- गंभीरता: %s

अब आपको इस जानकारी के आधार पर एक विस्तृत रिपोर्ट **केवल हिंदी में** लिखनी है। प्रत्येक अनुभाग हिंदी में होना चाहिए:

**अवलोकन** (हिंदी में लिखें):
- MRI परिणाम क्या दर्शाते हैं, इसे सरल हिंदी में समझाएं

**स्पष्टीकरण** (हिंदी में लिखें):
- यह बीमारी क्या है, इसे आम बोलचाल की हिंदी भाषा में समझाएं
- एक उदाहरण या उपमा दें जो हर कोई समझ सके
- जटिल चिकित्सा शब्दों का उपयोग न करें

**कार्यवाही** (हिंदी में लिखें):
- मरीज को क्या करना चाहिए, कदम-दर-कदम हिंदी में बताएं
- किस डॉक्टर से मिलना है
- कौन से परीक्षण कराने हैं

**परिणाम** (हिंदी में लिखें):
- इलाज के बाद क्या हो सकता है
- मरीज को आश्वस्त करने वाला संदेश हिंदी में दें

%s
🔴 अनिवार्य: आपकी पूरी प्रतिक्रिया देवनागरी लिपि में हिंदी भाषा में होनी चाहिए। कोई अंग्रेजी नहीं।
🔴 MANDATORY: Your complete response must be in Hindi Devanagari script. Zero English words.
`, condition, confidence, severityLevel, notesSection)
	}

	return fmt.Sprintf(`
Overview:
You recently had an MRI scan. The AI system found:
- Possible diagnosis: %s
- Certainty Score: %g%%
- Severity: %s

Explanation:
In very simple language, describe what this condition is.
- Use an analogy a layperson can understand.
- Avoid medical jargon—pretend you are explaining to a teenager or parent.

Actions:
What should the patient do next? Give clear, friendly steps.

Outcomes:
Provide a brief, reassuring note about prognosis, emphasizing timely care. Stress to always confirm with a specialist.

Notes:
%s
`, condition, confidence, severityLevel, notes)
}
