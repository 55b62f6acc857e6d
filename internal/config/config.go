package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Outlook   Outlook   `koanf:"outlook"`
	Sync      Sync      `koanf:"sync"`
	Export    Export    `koanf:"export"`
	Clean     Clean     `koanf:"clean"`
	Dashboard Dashboard `koanf:"dashboard"`
	Log       Log       `koanf:"log"`
}

type Outlook struct {
	// Calendar is the folder name to synchronize. Empty selects the
	// default calendar.
	Calendar       string   `koanf:"calendar"`
	SkipCategories []string `koanf:"skipcategories"`
}

type Sync struct {
	DaysBack         int  `koanf:"daysback"`
	DaysForward      int  `koanf:"daysforward"`
	TimeoutSeconds   int  `koanf:"timeoutseconds"`
	Retries          int  `koanf:"retries"`
	FullSync         bool `koanf:"fullsync"`
	RetryWaitSeconds int  `koanf:"retrywaitseconds"`
}

func (s Sync) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s Sync) RetryWait() time.Duration {
	return time.Duration(s.RetryWaitSeconds) * time.Second
}

type Export struct {
	Dir            string `koanf:"dir"`
	PromptTemplate string `koanf:"prompttemplate"`
}

type Clean struct {
	ExtraPatterns []string `koanf:"extrapatterns"`
}

type Dashboard struct {
	Listen  string `koanf:"listen"`
	Refresh string `koanf:"refresh"`
}

type Log struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Outlook: Outlook{
			SkipCategories: []string{"OOO"},
		},
		Sync: Sync{
			DaysBack:         1,
			DaysForward:      1,
			TimeoutSeconds:   30,
			Retries:          3,
			RetryWaitSeconds: 2,
		},
		Export: Export{
			Dir: "exports",
		},
		Dashboard: Dashboard{
			Listen:  ":8181",
			Refresh: "*/15 * * * *",
		},
		Log: Log{
			Level: "info",
			File:  "logs/outcal.log",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "OUTCAL_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "OUTCAL_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
