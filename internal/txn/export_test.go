package txn

// PendingKeys — доступ к очереди ключей для тестов пакета.
var PendingKeys = pendingKeys
