package main

import (
	"fmt"
	"strconv"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/web/service"
)

// CLI color constants
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

func initDBForCLI() error {
	return database.InitDB(config.GetDatabaseURL(), config.GetDBPath())
}

func resetSetting() {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}
	if err := settingService.ResetSettings(); err != nil {
		fmt.Println(Red + "Failed to reset settings: " + err.Error() + Reset)
	} else {
		fmt.Println(Green + "Settings successfully reset to defaults" + Reset)
	}
}

func showSetting() {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}
	registrationOpen, err := settingService.GetRegistrationOpen()
	if err != nil {
		fmt.Println("get registrationOpen failed, error info:", err)
	}
	welcome, err := settingService.GetWelcomeMessage()
	if err != nil {
		fmt.Println("get welcomeMessage failed, error info:", err)
	}
	statsCron, err := settingService.GetStatsCron()
	if err != nil {
		fmt.Println("get statsCron failed, error info:", err)
	}

	userService := service.UserService{}
	count, err := userService.CountUsers()
	if err != nil {
		fmt.Println("get user count failed, error info:", err)
	}

	fmt.Println("")
	fmt.Println(Green + "Current server settings:" + Reset)
	fmt.Println("registrationOpen:", registrationOpen)
	fmt.Println("welcomeMessage:  ", welcome)
	fmt.Println("statsCron:       ", statsCron)
	fmt.Println("registered users:", count)
	fmt.Println("listen port:     ", config.GetPort())
}

func updateSetting(registration string, welcome string, statsCron string) {
	if registration == "" && welcome == "" && statsCron == "" {
		return
	}

	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}

	if registration != "" {
		open, err := strconv.ParseBool(registration)
		if err != nil {
			fmt.Println(Red + "registration must be true or false" + Reset)
		} else if err := settingService.SetRegistrationOpen(open); err != nil {
			fmt.Println("set registrationOpen failed, error info:", err)
		} else {
			fmt.Println(Green + "registrationOpen updated" + Reset)
		}
	}

	if welcome != "" {
		if err := settingService.SetWelcomeMessage(welcome); err != nil {
			fmt.Println("set welcomeMessage failed, error info:", err)
		} else {
			fmt.Println(Green + "welcomeMessage updated" + Reset)
		}
	}

	if statsCron != "" {
		if err := settingService.SetStatsCron(statsCron); err != nil {
			fmt.Println("set statsCron failed, error info:", err)
		} else {
			fmt.Println(Green + "statsCron updated" + Reset)
		}
	}
}
