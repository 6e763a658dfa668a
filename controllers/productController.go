package controllers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/initializers"
	"github.com/sokoni-store/sokoni-api/models"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	if err := Audit.Record(actorID(ctx), "product.create", "product", product.ID, nil, nil,
		"Product "+product.Name+" created"); err != nil {
		Log.Warn("Audit write failed for product create", zap.Uint("productId", product.ID), zap.Error(err))
	}

	ctx.JSON(http.StatusCreated, product)
}

func GetProducts(ctx *gin.Context) {
	var products []models.Product

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	query := initializers.DB.Preload("Variants").Preload("Images").
		Where("archived = ?", false)
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR brand LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	result := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	var count int64
	initializers.DB.Model(&models.Product{}).Where("archived = ?", false).Count(&count)
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"hasNextPage": int(totalPages) > page,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product id", err)
		return
	}

	var product models.Product
	result := initializers.DB.Preload("Variants").Preload("Images").First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// ArchiveProduct hides a product from the storefront without deleting it.
func ArchiveProduct(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product id", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		}
		return
	}

	oldArchived := product.Archived
	product.Archived = !product.Archived
	if err := initializers.DB.Model(&product).Update("archived", product.Archived).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	if err := Audit.Record(actorID(ctx), "product.archive", "product", product.ID,
		map[string]bool{"archived": oldArchived},
		map[string]bool{"archived": product.Archived},
		"Product "+product.Name+" archive flag toggled"); err != nil {
		Log.Warn("Audit write failed for product archive", zap.Uint("productId", product.ID), zap.Error(err))
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func UploadProductImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	productIdStr := ctx.PostForm("productId")
	if productIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing productId", nil)
		return
	}

	productId, err := strconv.Atoi(productIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	var uploadedUrls []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			Log.Warn("Error opening upload", zap.String("filename", file.Filename), zap.Error(openErr))
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		// Unique key to prevent overwrites
		uniqueFilename := fmt.Sprintf("%d-%s-%s", productId, time.Now().Format("20060102150405"), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(uniqueFilename),
			Body:   f,
		})
		f.Close()
		if uploadErr != nil {
			Log.Warn("S3 upload failed", zap.String("filename", file.Filename), zap.Error(uploadErr))
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		image := models.ProductImage{Url: result.Location, ProductID: uint(productId)}
		if err := initializers.DB.Create(&image).Error; err != nil {
			Log.Warn("Failed to save image record", zap.String("url", result.Location), zap.Error(err))
			failedUploads = append(failedUploads, file.Filename)
			continue
		}
		uploadedUrls = append(uploadedUrls, result.Location)
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"uploaded": uploadedUrls,
		"failed":   failedUploads,
	})
}
