package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	pkg "github.com/timetomeet/meetinghub/pkg/internal"
	"github.com/timetomeet/meetinghub/pkg/internal/database"
	"github.com/timetomeet/meetinghub/pkg/internal/http"
	"github.com/timetomeet/meetinghub/pkg/internal/http/api"
	"github.com/timetomeet/meetinghub/pkg/internal/services"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetDefault("features.todo_ordering", true)
	viper.SetDefault("security.token_valid_hours", 72)

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	db, err := database.NewSource()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Outgoing mail
	postman := services.NewPostman()
	if !postman.Enabled() {
		log.Warn().Msg("Mailer is not configured, invitation and summary emails will be skipped...")
	}

	// Services
	accounts := services.NewAccountService(db)
	auth := services.NewAuthService(db, postman, accounts)
	meetings := services.NewMeetingService(db, postman)
	participants := services.NewParticipantService(db, postman)
	todos := services.NewTodoService(db)
	discussions := services.NewDiscussionService(db)
	reminders := services.NewReminderService(db, postman)

	// Server
	handlers := api.NewAPI(auth, accounts, meetings, participants, todos, discussions)
	app := http.NewServer(handlers)
	go http.Listen(app)

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", func() { services.DoAutoDatabaseCleanup(db) })
	quartz.AddFunc("@every 60m", func() { reminders.DeliverDueReminders() })
	quartz.Start()

	// Messages
	fmt.Println(color.New(color.FgHiCyan).Sprintf("MeetingHub v%s", pkg.AppVersion))
	log.Info().Msgf("MeetingHub v%s is started...", pkg.AppVersion)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msgf("MeetingHub v%s is quitting...", pkg.AppVersion)

	quartz.Stop()
}
