package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"TimekeeperBot"`
		Enabled bool   `yaml:"enabled" env-default:"true"`
	} `yaml:"telegram"`
	Redis struct {
		Addr     string `yaml:"addr" env-default:"127.0.0.1:6379"`
		Password string `yaml:"password" env-default:""`
		DB       int    `yaml:"db" env-default:"0"`
	} `yaml:"redis"`
	Google struct {
		CredsFile     string `yaml:"creds_file" env-default:"creds.json"`
		SpreadsheetId string `yaml:"spreadsheet_id" env-default:""`

		UsersSheetName      string `yaml:"users_sheet_name" env-default:"Сотрудники"`
		UsersSheetRange     string `yaml:"users_sheet_range" env-default:"A2:E"`
		WorkTypesSheetName  string `yaml:"work_types_sheet_name" env-default:"Виды работ"`
		WorkTypesSheetRange string `yaml:"work_types_sheet_range" env-default:"A2:A"`
		ClientsSheetName    string `yaml:"clients_sheet_name" env-default:"Клиенты"`
		ClientsSheetRange   string `yaml:"clients_sheet_range" env-default:"A2:B"`

		ReportSheetName   string `yaml:"report_sheet_name" env-default:"Отчет"`
		ReportSheetRange  string `yaml:"report_sheet_range" env-default:"A1:H"`
		ReportRemoveCol   string `yaml:"report_remove_col" env-default:"J"`
		HandbookExpireSec int    `yaml:"handbook_expire_sec" env-default:"600"`
		ReportExpireSec   int    `yaml:"report_expire_sec" env-default:"300"`

		StatsSheetName    string `yaml:"stats_sheet_name" env-default:"Статистика"`
		StatsRowsRange    string `yaml:"stats_rows_range" env-default:"A4:I"`
		StatsDateCell     string `yaml:"stats_date_cell" env-default:"B1"`
		StatsUserCell     string `yaml:"stats_user_cell" env-default:"B2"`
		StatsClientCell   string `yaml:"stats_client_cell" env-default:"B3"`
		StatsTimePlanCell string `yaml:"stats_time_plan_cell" env-default:"D1"`
		StatsTimeFactCell string `yaml:"stats_time_fact_cell" env-default:"D2"`
		StatsTimeNetCell  string `yaml:"stats_time_net_cell" env-default:"D3"`

		LockAttempts   int `yaml:"lock_attempts" env-default:"10"`
		LockBackoffSec int `yaml:"lock_backoff_sec" env-default:"1"`
		LockExpireSec  int `yaml:"lock_expire_sec" env-default:"30"`
	} `yaml:"google"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}

// Load reads a config without the process-wide singleton; used by tests.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, err
	}
	return conf, nil
}
