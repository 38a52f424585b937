// Package window хранит последние N элементов в кольцевом буфере фиксированного размера.
package window

// DefaultCapacity размер окна по умолчанию
const DefaultCapacity = 8

// empty маркер head/tail пустого окна
const empty = -1

// Window кольцевой буфер с вытеснением самого старого элемента.
// Не потокобезопасен, синхронизация на вызывающей стороне.
type Window[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

// New создаёт окно ёмкостью capacity; capacity <= 0 означает DefaultCapacity
func New[T any](capacity int) *Window[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window[T]{
		items: make([]T, capacity),
		head:  empty,
		tail:  empty,
	}
}

// Cap ёмкость окна
func (w *Window[T]) Cap() int {
	return len(w.items)
}

// Len количество элементов в окне
func (w *Window[T]) Len() int {
	return w.size
}

// Enqueue добавляет элемент в хвост, при заполненном окне сначала вытесняет голову
func (w *Window[T]) Enqueue(item T) {
	if w.size == len(w.items) {
		w.Dequeue()
	}

	if w.head == empty {
		w.head, w.tail = 0, 0
	} else {
		w.tail = (w.tail + 1) % len(w.items)
	}

	w.items[w.tail] = item
	w.size++
}

// Dequeue удаляет и возвращает самый старый элемент
func (w *Window[T]) Dequeue() (T, bool) {
	var zero T
	if w.head == empty {
		return zero, false
	}

	item := w.items[w.head]
	w.items[w.head] = zero
	w.size--

	if w.size == 0 {
		w.head, w.tail = empty, empty
	} else {
		w.head = (w.head + 1) % len(w.items)
	}

	return item, true
}

// Items возвращает элементы от старого к новому. Каждый вызов делает новый снимок.
func (w *Window[T]) Items() []T {
	items := make([]T, 0, w.size)
	for i := 0; i < w.size; i++ {
		items = append(items, w.items[(w.head+i)%len(w.items)])
	}
	return items
}

// Reset заменяет содержимое окна на items; из длинной последовательности остаются последние Cap() элементов
func (w *Window[T]) Reset(items []T) {
	var zero T
	for i := range w.items {
		w.items[i] = zero
	}
	w.head, w.tail, w.size = empty, empty, 0

	if len(items) > len(w.items) {
		items = items[len(items)-len(w.items):]
	}
	for _, item := range items {
		w.Enqueue(item)
	}
}
