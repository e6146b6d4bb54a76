package progress

func RenderWidget[T any](name string, render func() T) Widget[T] {
	return renderWidget(name, render)
}
