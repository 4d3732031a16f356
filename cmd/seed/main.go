// Seeds the fixture users (alice, bob, carol) with fixed lowercase Ethereum
// addresses. Idempotent: existing addresses are left untouched.
package main

import (
	"log"

	"stablemart/internal/config"
	"stablemart/internal/models"
	"stablemart/internal/repositories"
)

var seedUsers = []models.User{
	{
		Username:        "alice",
		EthereumAddress: "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
		Role:            models.RoleBuyer,
	},
	{
		Username:        "bob",
		EthereumAddress: "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc",
		Role:            models.RoleSeller,
	},
	{
		Username:        "carol",
		EthereumAddress: "0x90f79bf6eb2c4f870365e785982e1f101e93b906",
		Role:            models.RoleAdmin,
	},
}

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Failed to close PostgreSQL connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	for _, u := range seedUsers {
		var existing models.User
		if err := repositories.DB.Where("ethereum_address = ?", u.EthereumAddress).
			First(&existing).Error; err == nil {
			log.Printf("%s already exists, skipping", u.Username)
			continue
		}

		user := u
		user.AuthMethod = "siwe"
		user.Status = "active"
		if err := repositories.DB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create %s: %v", u.Username, err)
		}
		log.Printf("Created %s (%s, role %s)", user.Username, user.EthereumAddress, user.Role)
	}

	log.Println("Seed complete")
}
