package usecase

import (
	context "context"

	entity "github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	usecase "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/usecase"
	mock "github.com/stretchr/testify/mock"
)

// MockBankUseCase is a mock type for the BankUseCase type
type MockBankUseCase struct {
	mock.Mock
}

// CheckUsername provides a mock function with given fields: ctx, username
func (_m *MockBankUseCase) CheckUsername(ctx context.Context, username string) error {
	ret := _m.Called(ctx, username)
	return ret.Error(0)
}

// CreateAccount provides a mock function with given fields: ctx, req
func (_m *MockBankUseCase) CreateAccount(ctx context.Context, req usecase.CreateAccountRequest) (*entity.User, error) {
	ret := _m.Called(ctx, req)

	var r0 *entity.User
	if rf, ok := ret.Get(0).(*entity.User); ok {
		r0 = rf
	}
	return r0, ret.Error(1)
}

// Login provides a mock function with given fields: ctx, username, password
func (_m *MockBankUseCase) Login(ctx context.Context, username string, password string) (*entity.User, error) {
	ret := _m.Called(ctx, username, password)

	var r0 *entity.User
	if rf, ok := ret.Get(0).(*entity.User); ok {
		r0 = rf
	}
	return r0, ret.Error(1)
}

// Deposit provides a mock function with given fields: ctx, user, amountText
func (_m *MockBankUseCase) Deposit(ctx context.Context, user *entity.User, amountText string) (*usecase.TransactionResult, error) {
	ret := _m.Called(ctx, user, amountText)

	var r0 *usecase.TransactionResult
	if rf, ok := ret.Get(0).(*usecase.TransactionResult); ok {
		r0 = rf
	}
	return r0, ret.Error(1)
}

// Withdraw provides a mock function with given fields: ctx, user, amountText
func (_m *MockBankUseCase) Withdraw(ctx context.Context, user *entity.User, amountText string) (*usecase.TransactionResult, error) {
	ret := _m.Called(ctx, user, amountText)

	var r0 *usecase.TransactionResult
	if rf, ok := ret.Get(0).(*usecase.TransactionResult); ok {
		r0 = rf
	}
	return r0, ret.Error(1)
}

// GetStatement provides a mock function with given fields: ctx, user
func (_m *MockBankUseCase) GetStatement(ctx context.Context, user *entity.User) *usecase.Statement {
	ret := _m.Called(ctx, user)

	var r0 *usecase.Statement
	if rf, ok := ret.Get(0).(*usecase.Statement); ok {
		r0 = rf
	}
	return r0
}

// MinPasswordLength provides a mock function with no fields
func (_m *MockBankUseCase) MinPasswordLength() int {
	ret := _m.Called()
	return ret.Int(0)
}

// NewMockBankUseCase creates a new instance of MockBankUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockBankUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBankUseCase {
	m := &MockBankUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
