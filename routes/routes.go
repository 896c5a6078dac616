package routes

import (
	"catalog-importer/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, importCtrl *controllers.ImportController, categoryCtrl *controllers.CategoryController) {
	importRoutes := r.Group("/products/import")
	{
		importRoutes.POST("", importCtrl.ImportProducts)
		importRoutes.POST("/validate", importCtrl.ValidateImport)
		importRoutes.GET("/jobs/:id", importCtrl.GetImportJobStatus)
	}

	categoryRoutes := r.Group("/categories")
	{
		categoryRoutes.GET("", categoryCtrl.GetCategories)
		categoryRoutes.POST("", categoryCtrl.CreateCategory)
		categoryRoutes.PUT("/:id", categoryCtrl.UpdateCategory)
		categoryRoutes.DELETE("/:id", categoryCtrl.DeleteCategory)
	}
}
