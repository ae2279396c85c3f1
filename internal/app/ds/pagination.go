package ds

// MaxPageSize верхняя граница размера страницы в GET /search
const MaxPageSize = 1000

// PageBounds вычисляет границы страницы [start, stop) для size*offset.
// ok == false, если начало страницы за концом результатов;
// start == total допустим и даёт пустую страницу.
func PageBounds(size, offset, total int) (start, stop int, ok bool) {
	// size*offset > total проверяется делением, произведение может переполниться
	if offset > 0 && size > total/offset {
		return 0, 0, false
	}
	start = size * offset
	if start > total {
		return 0, 0, false
	}
	stop = total
	if size < total-start {
		stop = start + size
	}
	return start, stop, true
}
