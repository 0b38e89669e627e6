package testutils

import (
	"github.com/gin-gonic/gin"

	"github.com/linskybing/formify-go/internal/api/routes"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/repository"
)

func SetupRouter(svc *application.Services, repos *repository.Repos) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, svc, repos)
	return r
}
