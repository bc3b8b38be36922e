package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/infrastructure/clients/groq"
)

var (
	boldPattern     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	bulletPattern   = regexp.MustCompile(`^[-*•]\s`)
	numberedPattern = regexp.MustCompile(`^\d+\.\s`)
)

// parseBoldMarkdown converts **bold** spans to <strong> tags.
func parseBoldMarkdown(text string) string {
	return boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
}

// FormatLLMContent converts the model's markdown-flavored narrative into
// report HTML line by line: bullets and numbered items become list items,
// ## / ### and short all-caps lines become headings, everything else a
// paragraph.
func FormatLLMContent(llmText string) string {
	var b strings.Builder
	for _, line := range strings.Split(llmText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case bulletPattern.MatchString(trimmed):
			b.WriteString("<li>" + parseBoldMarkdown(trimmed[2:]) + "</li>")
		case numberedPattern.MatchString(trimmed):
			b.WriteString("<li>" + parseBoldMarkdown(numberedPattern.ReplaceAllString(trimmed, "")) + "</li>")
		case strings.HasPrefix(trimmed, "###"):
			b.WriteString("<h3>" + parseBoldMarkdown(strings.TrimLeft(strings.TrimPrefix(trimmed, "###"), " ")) + "</h3>")
		case strings.HasPrefix(trimmed, "##"):
			b.WriteString("<h2>" + parseBoldMarkdown(strings.TrimLeft(strings.TrimPrefix(trimmed, "##"), " ")) + "</h2>")
		case isHeadingLine(trimmed):
			b.WriteString("<h3>" + parseBoldMarkdown(trimmed) + "</h3>")
		default:
			b.WriteString("<p>" + parseBoldMarkdown(trimmed) + "</p>")
		}
	}
	return b.String()
}

// isHeadingLine treats short lines without lowercase letters as headings.
// Scripts without case, such as Devanagari, pass the check, so short Hindi
// lines also render as headings.
func isHeadingLine(line string) bool {
	length := utf8.RuneCountInString(line)
	return line == strings.ToUpper(line) && length > 3 && length < 50
}

type reportLabels struct {
	reportTitle        string
	reportID           string
	patientName        string
	generated          string
	certaintyScore     string
	certaintySuffix    string
	uploadedScan       string
	whatWasFound       string
	predictedCondition string
	aiAnalysis         string
	disclaimer         string
	disclaimerText     string
	notProvided        string
}

var englishLabels = reportLabels{
	reportTitle:        "AI MRI Diagnostic Report",
	reportID:           "Report ID",
	patientName:        "Patient Name",
	generated:          "Generated",
	certaintyScore:     "Certainty Score",
	certaintySuffix:    "Certainty",
	uploadedScan:       "Uploaded MRI Scan",
	whatWasFound:       "What Was Found",
	predictedCondition: "Predicted Condition",
	aiAnalysis:         "AI Analysis & Recommendations",
	disclaimer:         "Important Disclaimer",
	disclaimerText: "This report is generated by an AI system for informational purposes only. " +
		"It is NOT a substitute for professional medical advice, diagnosis, or treatment. " +
		"Always consult a qualified healthcare provider for proper evaluation and guidance.",
	notProvided: "Not provided",
}

var hindiLabels = reportLabels{
	reportTitle:        "AI MRI निदान रिपोर्ट",
	reportID:           "रिपोर्ट आईडी",
	patientName:        "रोगी का नाम",
	generated:          "तैयार की गई",
	certaintyScore:     "निश्चितता स्कोर",
	certaintySuffix:    "निश्चितता",
	uploadedScan:       "अपलोड की गई MRI स्कैन",
	whatWasFound:       "जांच में क्या पाया गया",
	predictedCondition: "संभावित निदान",
	aiAnalysis:         "AI विश्लेषण और सिफारिशें",
	disclaimer:         "महत्वपूर्ण अस्वीकरण",
	disclaimerText: "यह रिपोर्ट केवल सूचनात्मक उद्देश्यों के लिए AI सिस्टम द्वारा तैयार की गई है। " +
		"यह पेशेवर चिकित्सा सलाह, निदान या उपचार का विकल्प नहीं है। " +
		"उचित मूल्यांकन और मार्गदर्शन के लिए हमेशा एक योग्य स्वास्थ्य सेवा प्रदाता से परामर्श करें।",
	notProvided: "उपलब्ध नहीं",
}

// RenderParams carries everything the HTML report template needs.
type RenderParams struct {
	Prediction  entities.Prediction
	LLMText     string
	Severity    entities.Severity
	ReportID    string
	PatientName string
	ImageData   string
	Language    string
	GeneratedAt time.Time
}

// RenderHTMLReport produces the self-contained dark-theme report page.
func RenderHTMLReport(p RenderParams) string {
	language := groq.NormalizeLanguage(p.Language)
	labels := englishLabels
	htmlLang := "en"
	titleWord := "Report"
	fontFamily := "'Segoe UI', Arial, sans-serif"
	lineHeight := "1.7"
	if language == groq.LanguageHindi {
		labels = hindiLabels
		htmlLang = "hi"
		titleWord = "रिपोर्ट"
		fontFamily = "'Noto Sans Devanagari', 'Segoe UI', Arial, sans-serif"
		lineHeight = "1.9"
	}

	predicted := strings.ReplaceAll(p.Prediction.ConditionName(), "_", " ")
	conf := fmt.Sprintf("%.2f", p.Prediction.Confidence)
	severityClass := strings.ReplaceAll(strings.ToLower(p.Severity.Level), "-", "")

	patientName := p.PatientName
	if patientName == "" {
		patientName = labels.notProvided
	}

	scanSection := ""
	if p.ImageData != "" {
		scanSection = fmt.Sprintf(`
        <div class="scan-image-container">
          <h3 style="margin-top: 0; color: #4a5568;">%s</h3>
          <img src="%s" alt="MRI Scan" class="scan-image" />
        </div>`, labels.uploadedScan, p.ImageData)
	}

	return fmt.Sprintf(`<!doctype html>
<html lang=%q>
  <head>
    <meta charset="utf-8" />
    <title>आरोग्यPath %s - %s</title>
    <style>
      @page { size: A4; margin: 25mm 20mm; }
      body { font-family: %s; color: #ffffff; line-height: %s; margin: 0; padding: 20px; background: #000000; }
      header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 30px; padding-bottom: 12px; border-bottom: 3px solid #06b6d4; background: #000000; }
      h1 { margin: 0; font-size: 23px; color: #06b6d4; font-weight: 700; }
      h2 { font-size: 18px; color: #06b6d4; margin: 25px 0 12px 0; padding-bottom: 5px; border-bottom: 2px solid #06b6d4; }
      h3 { font-size: 16px; color: #22d3ee; margin-top: 18px; margin-bottom: 10px; }
      .section { margin-top: 22px; page-break-inside: avoid; padding: 10px 0; }
      .muted { color: #94a3b8; font-size: 12px; }
      .confidence { font-weight: 700; color: #06b6d4; font-size: 18px; }
      footer { position: fixed; bottom: 15mm; left: 0; right: 0; text-align: center; color: #64748b; font-size: 10px; border-top: 1px solid #1e293b; padding-top: 10px; background: #000000; }
      .badge { display: inline-block; padding: 8px 12px; background: linear-gradient(135deg, #06b6d4 0%%, #0891b2 100%%); color: #000000; border-radius: 8px; font-size: 14px; font-weight: 600; box-shadow: 0 2px 4px rgba(6, 182, 212, 0.3); }
      .severity-badge { display: inline-block; padding: 4px 10px; background: #1e293b; color: #06b6d4; border-radius: 7px; font-size: 13px; font-weight: 600; margin-top: 5px; border: 1px solid #06b6d4; }
      .severity-high { background: #7f1d1d; color: #fca5a5; border-color: #dc2626; }
      .severity-moderate { background: #78350f; color: #fdba74; border-color: #f97316; }
      .severity-low { background: #14532d; color: #86efac; border-color: #22c55e; }
      .prediction-box { background: #0f172a; padding: 18px; border-radius: 10px; border-left: 4px solid #06b6d4; margin: 16px 0; box-shadow: 0 2px 8px rgba(6, 182, 212, 0.2); }
      .disclaimer { background: #422006; border: 1px solid #f59e0b; padding: 13px; border-radius: 8px; margin-top: 23px; font-size: 12px; color: #fbbf24; }
      p { margin: 10px 0; color: #ffffff; }
      ul, ol { margin: 12px 0; padding-left: 27px; }
      li { margin: 8px 0; color: #ffffff; }
      strong { color: #06b6d4; }
      .scan-image-container { text-align: center; margin: 20px 0 30px 0; padding: 15px; background: #0f172a; border-radius: 10px; box-shadow: 0 2px 8px rgba(6, 182, 212, 0.2); border: 1px solid #1e293b; }
      .scan-image { max-width: 100%%; max-height: 300px; border-radius: 8px; border: 2px solid #06b6d4; }
      .main-content { margin-bottom: 80px; }
    </style>
  </head>
  <body>
    <header>
      <div>
        <h1>%s</h1>
        <div class="muted">%s: %s</div>
        <div class="muted">%s: %s</div>
        <div class="muted">%s: %s</div>
      </div>
      <div style="text-align: right;">
        <div class="badge">%s: %s%%</div>
        <div class="severity-badge severity-%s">%s %s</div>
      </div>
    </header>%s
    <div class="main-content">
      <div class="section">
        <h2>%s</h2>
        <div class="prediction-box">
          <p><strong>%s:</strong> <span class="confidence">%s</span></p>
          <p><strong>%s:</strong> %s%%</p>
        </div>
      </div>
      <div class="section">
        <h2>%s</h2>
        %s
      </div>
    </div>
    <div class="disclaimer">
      <strong>⚠️ %s:</strong> %s
    </div>
    <footer>
      <p>©️ %d आरोग्यPath - AI-Powered Healthcare Solutions</p>
      <p>This report is confidential and intended for your personal use. For audit logs and technical details, contact your system administrator.</p>
    </footer>
  </body>
</html>`,
		htmlLang,
		titleWord, p.ReportID,
		fontFamily, lineHeight,
		labels.reportTitle,
		labels.reportID, p.ReportID,
		labels.patientName, patientName,
		labels.generated, p.GeneratedAt.Format("January 2, 2006 at 3:04 PM"),
		labels.certaintyScore, conf,
		severityClass, p.Severity.Level, labels.certaintySuffix,
		scanSection,
		labels.whatWasFound,
		labels.predictedCondition, predicted,
		labels.certaintyScore, conf,
		labels.aiAnalysis,
		FormatLLMContent(p.LLMText),
		labels.disclaimer, labels.disclaimerText,
		p.GeneratedAt.Year(),
	)
}
