package services_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"shopdb/internal/models"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(id uint, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpsertProfile(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetProfile(userID uint) (*models.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserRepository) CreateAddress(address *models.Address) error {
	args := m.Called(address)
	return args.Error(0)
}

func (m *MockUserRepository) ListAddresses(userID uint) ([]models.Address, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Address), args.Error(1)
}

func (m *MockUserRepository) DeleteAddress(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockUserRepository) CreateRole(role *models.Role) error {
	args := m.Called(role)
	return args.Error(0)
}

func (m *MockUserRepository) CreatePermission(permission *models.Permission) error {
	args := m.Called(permission)
	return args.Error(0)
}

func (m *MockUserRepository) AssignRole(userID, roleID uint) error {
	args := m.Called(userID, roleID)
	return args.Error(0)
}

func (m *MockUserRepository) GrantPermission(roleID, permissionID uint) error {
	args := m.Called(roleID, permissionID)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserRoles(userID uint) ([]models.Role, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Role), args.Error(1)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateCategory(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockProductRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockProductRepository) ListCategories() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) CreateVariant(variant *models.ProductVariant) error {
	args := m.Called(variant)
	return args.Error(0)
}

func (m *MockProductRepository) GetVariantByID(id uint) (*models.ProductVariant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) UpsertInventory(inventory *models.Inventory) error {
	args := m.Called(inventory)
	return args.Error(0)
}

func (m *MockProductRepository) GetInventoryForProduct(productID uint) (*models.Inventory, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockProductRepository) GetInventoryForVariant(variantID uint) (*models.Inventory, error) {
	args := m.Called(variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockProductRepository) AdjustQuantity(inventoryID uint, delta int) error {
	args := m.Called(inventoryID, delta)
	return args.Error(0)
}

func (m *MockProductRepository) Reserve(inventoryID uint, quantity int) error {
	args := m.Called(inventoryID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) Release(inventoryID uint, quantity int) error {
	args := m.Called(inventoryID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) CreateReview(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockProductRepository) ListReviews(productID uint) ([]models.Review, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(id uint, status models.OrderStatus, deliveredAt *time.Time) error {
	args := m.Called(id, status, deliveredAt)
	return args.Error(0)
}

func (m *MockOrderRepository) AddPayment(payment *models.Payment) error {
	args := m.Called(payment)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePaymentStatus(paymentID uint, status models.PaymentStatus, processedAt *time.Time) error {
	args := m.Called(paymentID, status, processedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) AddShipping(shipping *models.Shipping) error {
	args := m.Called(shipping)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateShippingStatus(shippingID uint, status models.ShippingStatus, deliveredAt *time.Time) error {
	args := m.Called(shippingID, status, deliveredAt)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of
// repositories.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateTemplate(template *models.NotificationTemplate) error {
	args := m.Called(template)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetTemplateByID(id uint) (*models.NotificationTemplate, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationTemplate), args.Error(1)
}

func (m *MockNotificationRepository) ListTemplates(notificationType models.NotificationType) ([]models.NotificationTemplate, error) {
	args := m.Called(notificationType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NotificationTemplate), args.Error(1)
}

func (m *MockNotificationRepository) Create(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(userID uint) ([]models.Notification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) UpdateStatus(id uint, status models.NotificationStatus, at time.Time) error {
	args := m.Called(id, status, at)
	return args.Error(0)
}

func (m *MockNotificationRepository) AddDeliveryLog(deliveryLog *models.DeliveryLog) error {
	args := m.Called(deliveryLog)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetPreference(userID uint, notificationType models.NotificationType) (*models.UserNotificationPreference, error) {
	args := m.Called(userID, notificationType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserNotificationPreference), args.Error(1)
}

func (m *MockNotificationRepository) UpsertPreference(preference *models.UserNotificationPreference) error {
	args := m.Called(preference)
	return args.Error(0)
}

// MockEventPublisher records published events.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}
