package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shopdb/internal/models"
	"shopdb/internal/services"
)

func TestUserService_SaveProfileRequiresUserID(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo)

	err := userService.SaveProfile(&models.Profile{})
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "UpsertProfile", mock.Anything)

	profile := &models.Profile{UserID: 42}
	mockRepo.On("UpsertProfile", profile).Return(nil).Once()
	assert.NoError(t, userService.SaveProfile(profile))
	mockRepo.AssertExpectations(t)
}

func TestUserService_AddAddressDefaultsToBilling(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo)

	err := userService.AddAddress(&models.Address{})
	assert.Error(t, err, "an address without a user is rejected")

	address := &models.Address{
		UserID:        42,
		StreetAddress: "1 Main St",
		City:          "Springfield",
		State:         "IL",
		PostalCode:    "12345",
		Country:       "US",
	}
	mockRepo.On("CreateAddress", address).Return(nil).Once()
	assert.NoError(t, userService.AddAddress(address))
	assert.Equal(t, models.AddressTypeBilling, address.Type)
	mockRepo.AssertExpectations(t)
}

func TestUserService_RemoveAddressScopesToUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo)

	mockRepo.On("DeleteAddress", uint(3), uint(42)).Return(nil).Once()
	assert.NoError(t, userService.RemoveAddress(3, 42))
	mockRepo.AssertExpectations(t)
}
