package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching products"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func createProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := productInputFromForm(c)
		if !ok {
			return
		}

		p, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error adding product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "imageUrl": p.ImageURL})
	}
}

func updateProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := productInputFromForm(c)
		if !ok {
			return
		}

		p, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error updating product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "imageUrl": p.ImageURL})
	}
}

func deleteProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error deleting product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// productInputFromForm parses the multipart form shared by create and
// update. Writes the error response itself and returns ok=false on failure.
func productInputFromForm(c *gin.Context) (catalogsvc.ProductInput, bool) {
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return catalogsvc.ProductInput{}, false
	}

	in := catalogsvc.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
			return catalogsvc.ProductInput{}, false
		}
		// gin closes multipart temp files when the request ends.
		in.Image = &catalogsvc.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Reader:      f,
		}
	}
	return in, true
}
