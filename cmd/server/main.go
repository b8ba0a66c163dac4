package main

import (
	"context"
	"os"

	"github.com/Luismorlan/sociograph/server"
	"github.com/Luismorlan/sociograph/store"
	"github.com/Luismorlan/sociograph/utils/dotenv"
	sflag "github.com/Luismorlan/sociograph/utils/flag"
	. "github.com/Luismorlan/sociograph/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	sflag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	InitLogger()

	graph, err := store.NewGraph(store.ConfigFromEnv())
	if err != nil {
		Log.Fatalf("fail to create graph store: %s", err)
	}
	ctx := context.Background()
	defer graph.Close(ctx)

	if err := graph.Verify(ctx); err != nil {
		Log.Fatalf("fail to connect to neo4j: %s", err)
	}
	if err := graph.EnsureConstraints(ctx); err != nil {
		Log.Fatalf("fail to ensure graph constraints: %s", err)
	}

	if !sflag.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	server.New(graph).Register(router)

	Log.Info("api server starts up")
	router.Run(serverAddr())
}

func serverAddr() string {
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}
