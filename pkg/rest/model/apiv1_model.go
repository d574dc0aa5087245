package model

// JSONSanitizeRequestV1 carries chapter HTML to be sanitized, a null html is treated as empty.
type JSONSanitizeRequestV1 struct {
	HTML *string `json:"html"`
}

// JSONSanitizeResponseV1 contains the sanitized HTML along with a summary of the changes.
type JSONSanitizeResponseV1 struct {
	HTML   string        `json:"html"`
	Report *JSONReportV1 `json:"report"`
}

// JSONReportV1 counts what the sanitizer removed or rewrote.
type JSONReportV1 struct {
	Scripts           int  `json:"scripts"`
	Schemes           int  `json:"schemes"`
	Handlers          int  `json:"handlers"`
	Styles            int  `json:"styles"`
	EmbedsKept        int  `json:"embeds-kept"`
	EmbedsDropped     int  `json:"embeds-dropped"`
	ContainersDropped int  `json:"containers-dropped"`
	Stripped          int  `json:"stripped"`
	Comments          int  `json:"comments"`
	Removed           int  `json:"removed"`
	Clean             bool `json:"clean"`
	Failed            bool `json:"failed"`
}

// JSONSpeechRequestV1 carries chapter HTML to be prepared for text-to-speech.
type JSONSpeechRequestV1 struct {
	HTML      *string `json:"html"`
	ChunkSize int     `json:"chunkSize,omitempty"`
}

// JSONSpeechResponseV1 contains the narration text and its chunks.
type JSONSpeechResponseV1 struct {
	Text   string   `json:"text"`
	Chunks []string `json:"chunks"`
}

// JSONExcerptRequestV1 carries chapter HTML to be reduced to a plain text excerpt.
type JSONExcerptRequestV1 struct {
	HTML  *string `json:"html"`
	Limit int     `json:"limit,omitempty"`
}

// JSONExcerptResponseV1 contains the plain text excerpt.
type JSONExcerptResponseV1 struct {
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

// JSONProviderV1 describes an allowed embed provider.
type JSONProviderV1 struct {
	Name            string `json:"name"`
	Prefix          string `json:"prefix"`
	Allow           string `json:"allow"`
	ReferrerPolicy  string `json:"referrerpolicy"`
	Sandbox         string `json:"sandbox"`
	AllowFullscreen bool   `json:"allowfullscreen"`
}
