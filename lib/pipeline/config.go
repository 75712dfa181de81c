package pipeline

import (
	"time"

	"reviewtopics/lib/cohort"
	configlibsql "reviewtopics/lib/configuration/libsql"
	"reviewtopics/lib/configutil"
	"reviewtopics/lib/topics"
	"reviewtopics/lib/topicplot"
)

const (
	ModeHTTP    = "http"
	ModeBrowser = "browser"
	// ModeAuto tries a direct request first and falls back to the browser.
	ModeAuto = "auto"
)

type HarvestConfig struct {
	URL    string `json:"url"`
	Output string `json:"output"`
	Mode   string `json:"mode"`
	// BrowserPath is the chrome executable used by the browser mode.
	BrowserPath    string `json:"browser_path"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	Retries        int    `json:"retries"`
	// DumpDir receives a copy of every http exchange when set.
	DumpDir string `json:"dump_dir"`
}

func (c HarvestConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type AnalyzeConfig struct {
	Locations  string `json:"locations"`
	Reviews    string `json:"reviews"`
	PlotDir    string `json:"plot_dir"`
	TopFile    string `json:"top_file"`
	BottomFile string `json:"bottom_file"`

	CohortSize    int   `json:"cohort_size"`
	MinReviews    int64 `json:"min_reviews"`
	StrictCohorts bool  `json:"strict_cohorts"`

	TopWords       int      `json:"top_words"`
	Topics         int      `json:"topics"`
	Seed           uint64   `json:"seed"`
	Iterations     int      `json:"iterations"`
	MaxDF          float64  `json:"max_df"`
	MinDF          int      `json:"min_df"`
	ExtraStopWords []string `json:"extra_stop_words"`

	FlaggedWords   []string `json:"flagged_words"`
	FlagSimilarity float64  `json:"flag_similarity"`

	Store configlibsql.Struct `json:"store"`
}

func (c AnalyzeConfig) cohortOptions() cohort.Options {
	return cohort.Options{
		Size:       c.CohortSize,
		MinReviews: c.MinReviews,
		Strict:     c.StrictCohorts,
	}
}

func (c AnalyzeConfig) topicOptions() topics.Options {
	return topics.Options{
		VectoriserOptions: topics.VectoriserOptions{
			MaxDF:     c.MaxDF,
			MinDF:     c.MinDF,
			StopWords: topics.DefaultStopWords(c.ExtraStopWords...),
		},
		Topics:     c.Topics,
		Seed:       c.Seed,
		Iterations: c.Iterations,
	}
}

func (c AnalyzeConfig) plotOptions() topicplot.Options {
	return topicplot.Options{
		TopWords:       c.TopWords,
		Flagged:        c.FlaggedWords,
		FlagSimilarity: c.FlagSimilarity,
	}
}

type Config struct {
	Harvest HarvestConfig `json:"harvest"`
	Analyze AnalyzeConfig `json:"analyze"`
}

func DefaultConfig() Config {
	return Config{
		Harvest: HarvestConfig{
			URL:            "https://lamadeleine.com/wp-json/wp/v2/restaurant-locations?per_page=150",
			Output:         "location_data.csv",
			Mode:           ModeAuto,
			TimeoutSeconds: 30,
		},
		Analyze: AnalyzeConfig{
			Locations:  "location_data.csv",
			Reviews:    "technicalAssessment-GoogleReviews.csv",
			PlotDir:    "plots",
			TopFile:    "top_5_LDA.pdf",
			BottomFile: "bottom_5_LDA.pdf",
			CohortSize: 5,
			MinReviews: 10,
			TopWords:   9,
			Topics:     3,
			Seed:       42,
			MaxDF:      0.95,
			MinDF:      2,
			FlaggedWords: []string{
				"rude",
				"bad",
			},
		},
	}
}

// ReadConfig reads the config file at path, missing fields and a missing
// file fall back to DefaultConfig.
func ReadConfig(path string) (Config, error) {
	return configutil.ReadConfigWithDefaults(path, DefaultConfig())
}
