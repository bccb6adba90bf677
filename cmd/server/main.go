package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/ctisourcing/intake-api/internal/api/handlers"
	"github.com/ctisourcing/intake-api/internal/api/middleware"
	"github.com/ctisourcing/intake-api/internal/config"
	"github.com/ctisourcing/intake-api/internal/logging"
	"github.com/ctisourcing/intake-api/internal/monitoring"
	"github.com/ctisourcing/intake-api/internal/ratelimit"
	"github.com/ctisourcing/intake-api/internal/server"
	"github.com/ctisourcing/intake-api/internal/server/routes"
	"github.com/ctisourcing/intake-api/internal/service"
	"github.com/ctisourcing/intake-api/internal/utils"
	"github.com/ctisourcing/intake-api/internal/version"
)

var logger *logging.Logger

func initLogger(cfg *config.Config) {
	logConfig := &logging.Config{
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}

	if err := logging.InitLogger(logConfig); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger = logging.GetGlobalLogger()
}

var rootCmd = &cobra.Command{
	Use:   "intake-api",
	Short: "CTI Sourcing intake API - inquiry and analytics backend",
	Long: `The intake API receives quote inquiries from the CTI Sourcing
marketing site, relays them by email to the sales team alongside a
confirmation to the submitter, and collects first-party analytics
events for forwarding to Google Tag Manager.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the intake API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		initLogger(cfg)
		defer logger.Close()

		logger.Info("Starting intake API %s in %s mode", version.Get(), cfg.Environment)

		if len(cfg.TrustedProxies) > 0 {
			if err := utils.SetTrustedProxies(cfg.TrustedProxies); err != nil {
				logger.Error("Invalid TRUSTED_PROXIES: %v", err)
				os.Exit(1)
			}
		}

		// Rate limit store: Redis when configured, otherwise in-process
		var limiter ratelimit.Limiter
		var redisLimiter *ratelimit.RedisLimiter
		if cfg.RedisEnabled() {
			redisLimiter, err = ratelimit.NewRedisLimiter(ratelimit.RedisOptions{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			}, cfg.RateLimitMax, cfg.RateLimitWindow)
			if err != nil {
				logger.Error("Failed to connect rate-limit store: %v", err)
				os.Exit(1)
			}
			limiter = redisLimiter
			logger.Info("Rate limiting backed by Redis at %s", cfg.RedisAddr)
		} else {
			limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
			logger.Info("Rate limiting backed by in-process memory (single instance)")
		}
		defer limiter.Close()

		metrics := monitoring.NewMetrics()
		mailer := service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPAddr(), cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailTimeout)

		inquiryService := service.NewInquiryService(limiter, mailer, metrics, logger, service.InquirySettings{
			OperatorEmail: cfg.SalesEmail,
			FromAddress:   cfg.MailFrom,
		})

		analyticsService := service.NewAnalyticsService(metrics, logger)
		if cfg.GTMServerURL != "" {
			analyticsService.Register(service.NewGTMDestination(cfg.GTMServerURL, cfg.AnalyticsTimeout))
		}
		if cfg.AnalyticsLogLocal {
			analyticsService.Register(service.NewLogDestination(logger))
		}

		healthOpts := monitoring.HealthOptions{}
		if cfg.SMTPHost != "" {
			healthOpts.SMTPAddr = cfg.SMTPAddr()
		}
		if redisLimiter != nil {
			healthOpts.RedisPing = redisLimiter.Ping
		}
		health := monitoring.NewHealthHandler(healthOpts)

		h := &routes.Handlers{
			Inquiry:   handlers.NewInquiryHandler(inquiryService),
			Analytics: handlers.NewAnalyticsHandler(analyticsService),
		}
		m := &routes.Middleware{
			Validation: middleware.NewValidationMiddleware(),
		}

		srv := server.NewServer(cfg, logger)
		srv.Init(h, m, health, metrics)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}

		logger.Info("Server stopped")
	},
}

var sendTestCmd = &cobra.Command{
	Use:   "send-test",
	Short: "Send a test notification through the configured mail relay",
	Long: `Sends a synthetic inquiry notification to the operator mailbox to
verify the SMTP relay address and credentials before going live.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		if cfg.SMTPHost == "" {
			fmt.Println("SMTP_HOST is not configured")
			os.Exit(1)
		}

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = fmt.Sprintf(" Sending test message via %s...", cfg.SMTPAddr())
		s.Start()

		mailer := service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPAddr(), cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailTimeout)
		err = mailer.Send(&service.EmailMessage{
			From:    cfg.MailFrom,
			To:      cfg.SalesEmail,
			Subject: "Intake API relay test",
			HTML:    "<p>This is a test message from the intake API. The mail relay configuration works.</p>",
		})

		s.Stop()

		if err != nil {
			fmt.Printf("Relay test failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Relay test succeeded; message sent to %s\n", cfg.SalesEmail)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get())
	},
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sendTestCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
