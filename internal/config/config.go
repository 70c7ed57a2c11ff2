package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Addr     string   `koanf:"addr"`
	Database Database `koanf:"db"`
	Advice   Advice   `koanf:"advice"`
	Notifier Notifier `koanf:"notifier"`
}

type Database struct {
	Path string `koanf:"path"`
}

type Advice struct {
	BaseURL      string `koanf:"baseurl"`
	ApiKey       string `koanf:"apikey"`
	Model        string `koanf:"model"`
	PremiumModel string `koanf:"premiummodel"`
}

// Notifier configures the reminder notification channel. An empty
// WebhookURL means no external channel is authorized and reminders
// degrade to in-process alerts.
type Notifier struct {
	WebhookURL string `koanf:"webhookurl"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr: ":8181",
		Database: Database{
			Path: "./data/poupanca.db",
		},
		Advice: Advice{
			BaseURL:      "https://generativelanguage.googleapis.com/v1beta",
			Model:        "gemini-3-flash-preview",
			PremiumModel: "gemini-3-pro-preview",
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
		Prefix: "POUPANCA_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "POUPANCA_")), "_", ".")
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
