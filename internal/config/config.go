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

const envPrefix = "REPOCARD_"

type Application struct {
	Host     string   `koanf:"host"`
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	GitHub   GitHub   `koanf:"github"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type GitHub struct {
	Token string `koanf:"token"`
	// BaseUrl points the client at a GitHub Enterprise or test API; empty means api.github.com.
	BaseUrl      string `koanf:"baseurl"`
	TimecardPath string `koanf:"timecardpath"`
	PerPage      int    `koanf:"perpage"`
	// MaxCommits caps how many commits are fetched per branch. 0 means no cap.
	MaxCommits int `koanf:"maxcommits"`
}

func Defaults() Application {
	return Application{
		Host: "http://localhost:8181",
		Server: Server{
			Addr: ":8181",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "repocard",
			Pass:   "",
			Name:   "repocard",
			Schema: "repocard",
		},
		GitHub: GitHub{
			TimecardPath: ".timecard.json",
			PerPage:      100,
			MaxCommits:   1000,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
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
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// REPOCARD_GITHUB_TIMECARDPATH -> github.timecardpath
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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
