package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"adboard/internal/model"
	"adboard/pkg/config"
	"adboard/pkg/database"
	"adboard/pkg/logger"
	"adboard/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, s3Client, cfg.ListingTTL(), log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, listingTTL time.Duration, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	if _, err := seedUser(db, log, "admin@adboard.local", "admin", "admin12345", true); err != nil {
		return err
	}

	categoryIDs, err := seedCategories(db, log)
	if err != nil {
		return err
	}

	testUsers := []struct {
		email    string
		username string
		password string
	}{
		{"alice@test.com", "alice_seller", "password123"},
		{"bob@test.com", "bob_seller", "password123"},
		{"charlie@test.com", "charlie_buyer", "password123"},
	}

	for i, userData := range testUsers {
		userID, err := seedUser(db, log, userData.email, userData.username, userData.password, false)
		if err != nil {
			log.Error("Failed to create user %s: %v", userData.username, err)
			continue
		}

		listingsCount := 2 + i%2
		for j := 0; j < listingsCount; j++ {
			categoryID := categoryIDs[(i+j)%len(categoryIDs)]
			if err := createListingWithImage(db, s3Client, httpClient, userID, userData.username, categoryID, j, listingTTL, log); err != nil {
				log.Error("Failed to create listing %d for user %s: %v", j+1, userData.username, err)
				continue
			}
			time.Sleep(200 * time.Millisecond)
		}
	}

	return nil
}

func seedUser(db *gorm.DB, log *logger.Logger, email, username, password string, isAdmin bool) (uint, error) {
	var existing model.UserModel
	if err := db.Where("email = ? OR username = ?", email, username).First(&existing).Error; err == nil {
		log.Info("User %s already exists, skipping", username)
		return existing.ID, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.UserModel{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		IsAdmin:  isAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		return 0, fmt.Errorf("failed to create user %s: %w", username, err)
	}

	log.Info("Created user: %s (%s)", username, email)
	return user.ID, nil
}

func seedCategories(db *gorm.DB, log *logger.Logger) ([]uint, error) {
	categories := []struct {
		name string
		slug string
	}{
		{"Electronics", "electronics"},
		{"Furniture", "furniture"},
		{"Vehicles", "vehicles"},
		{"Real Estate", "real-estate"},
		{"Services", "services"},
	}

	ids := make([]uint, 0, len(categories))
	for _, c := range categories {
		var existing model.CategoryModel
		if err := db.Where("slug = ?", c.slug).First(&existing).Error; err == nil {
			ids = append(ids, existing.ID)
			continue
		}

		category := &model.CategoryModel{Name: c.name, Slug: c.slug}
		if err := db.Create(category).Error; err != nil {
			return nil, fmt.Errorf("failed to create category %s: %w", c.slug, err)
		}
		log.Info("Created category: %s", c.name)
		ids = append(ids, category.ID)
	}
	return ids, nil
}

func createListingWithImage(db *gorm.DB, s3Client *s3.Client, httpClient *http.Client, userID uint, username string, categoryID uint, index int, listingTTL time.Duration, log *logger.Logger) error {
	cataasURL := "https://cataas.com/cat"
	if index%2 == 0 {
		cataasURL += fmt.Sprintf("/says/For sale by %s", username)
	}

	log.Info("Fetching placeholder image from %s", cataasURL)
	resp, err := httpClient.Get(cataasURL)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return fmt.Errorf("received empty image data")
	}

	fileKey := fmt.Sprintf("listings/%d/seed_%d.jpg", userID, index)
	imageURL, err := s3Client.UploadFile(fileKey, bytes.NewReader(imageData), "image/jpeg")
	if err != nil {
		return fmt.Errorf("failed to upload image to S3: %w", err)
	}

	// Every other seeded listing goes straight to the public board; the
	// rest stay in the review queue so the moderation flow has work.
	approved := index%2 == 0

	listing := &model.ListingModel{
		UserID:        userID,
		Title:         fmt.Sprintf("Great deal #%d from %s", index+1, username),
		Description:   fmt.Sprintf("Seeded listing #%d. Lightly used, pickup only.", index+1),
		City:          []string{"Berlin", "Hamburg", "Munich"}[index%3],
		CategoryID:    categoryID,
		ContactPerson: username,
		Phone:         fmt.Sprintf("+49 30 555 01%02d", index),
		Type:          "premium",
		Approved:      approved,
		Active:        true,
		ExpiresAt:     time.Now().Add(listingTTL),
	}
	if err := db.Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	image := &model.ListingImageModel{
		ListingID: listing.ID,
		URL:       imageURL,
		Key:       fileKey,
		Position:  0,
	}
	if err := db.Create(image).Error; err != nil {
		log.Error("Failed to create listing image: %v", err)
	}

	log.Info("Created listing: %s by %s", listing.Title, username)
	return nil
}
