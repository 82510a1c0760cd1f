// Package config loads service configuration with viper.
//
// A config.yml is searched under cmd/<service>/, config/ and the working
// directory, and an optional .env file is loaded with godotenv. Environment
// variables override file values: EVALUATOR_MODE sets evaluator.mode and
// LOGGING_LEVEL sets logging.level.
//
//	var cfg AppConfig
//	err := config.LoadConfig("seqdemo", &cfg, config.WithConfigFile(path))
//
// Section types such as EvaluatorConfig validate through struct tags and
// report failures as INVALID_CONFIG errors.
package config
