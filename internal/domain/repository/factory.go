package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Payments() PaymentRepository
}
