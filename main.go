package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sokoni-store/sokoni-api/controllers"
	"github.com/sokoni-store/sokoni-api/initializers"
	"github.com/sokoni-store/sokoni-api/notify"
	"github.com/sokoni-store/sokoni-api/routes"
	"github.com/sokoni-store/sokoni-api/store"
)

func init() {
	initializers.LoadEnv()
	initializers.InitLogger()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.ConnectToRedis()
}

func main() {
	relay := notify.NewRedisRelay(initializers.Redis)
	push := notify.NewWebPushSender()
	kv := store.NewRedisStore(initializers.Redis)

	var events notify.EventProducer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer := notify.NewKafkaProducer(strings.Split(brokers, ","), "order-events")
		defer producer.Close()
		events = producer
	}

	controllers.Setup(initializers.DB, relay, push, events, kv, initializers.Log)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://www.sokoni.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ProductRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server)
	routes.CustomerRoutes(server)
	routes.NotificationRoutes(server)
	routes.AuditRoutes(server)
	routes.PushRoutes(server)
	server.Run()
}
